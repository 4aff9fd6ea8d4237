/*

Package custody defines the interfaces shared by the custody account
extensions: storage, messages, transactions and handlers. It also carries the
helpers used to pass the account identity and the logger through a
context.Context.

We pass context through context.Context between the app and the handlers.
There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower level code
cannot change who the account is halfway through an action.

*/
package custody
