/*
Package app hosts a single custody account. It owns the persistent store,
routes every transaction to its handler, and applies one transaction at a
time inside a cache wrap of the store, so a rejected transaction leaves no
trace.
*/
package app
