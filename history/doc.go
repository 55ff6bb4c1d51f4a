/*
Package history defines the location store a navigation controller reads and writes,
and the signals announcing location changes the controller did not cause.

[History] covers the stack itself: the current [Entry], push, replace and back.
[Notifier] covers the signals: a pop when the current entry moves
through back, forward or an edited URL, and a ready when the initial location has loaded.

Two implementations ship with the package.
[*Memory] keeps the stack in process and fires signals to its own listeners.
[*Redis] keeps the stack in Redis under a session key
and fires signals over Redis pub/sub, so a second process can drive back and forward.
*/
package history
