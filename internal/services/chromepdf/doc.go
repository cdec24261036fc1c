// Package chromepdf prints local HTML files to PDF with headless Chrome.
//
// Renderer implements rendering.Renderer on top of chromedp: it opens the
// file:// URL, waits for the configured settle delay so images finish
// decoding, and calls Page.printToPDF with the requested paper size,
// orientation, and margins.
package chromepdf
