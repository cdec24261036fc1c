// Package rendering turns the assembled gallery into the final PDF and removes
// the intermediate HTML afterwards.
//
// DocumentRenderer is the RenderDocument stage; it hands temp.html to a
// Renderer together with the configured page layout. Cleaner is registered as
// a finalizer and deletes temp.html on a best-effort basis.
package rendering
