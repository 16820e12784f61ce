// Package http serves the document CMS over HTTP.
//
// Routes:
//   - GET  /                  home page (signed in or signed out view)
//   - GET  /users/signin      sign-in form
//   - POST /users/signin      verify credentials
//   - POST /users/signout     sign out
//   - GET  /new, POST /new    new document form and creation (signed in)
//   - GET  /{name}            view a document
//   - GET  /{name}/edit, POST /{name}/edit   edit a document (signed in)
//   - POST /{name}/delete     delete a document (signed in)
//
// Every request takes one listing snapshot of the document store before any
// route logic runs; existence checks during that request use the snapshot.
package http
