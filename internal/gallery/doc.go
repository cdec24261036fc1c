// Package gallery writes the HTML pages that lay out extracted thumbnails.
//
// Two pages are produced from the same markup: index.html references images by
// relative filename for browsing, and temp.html references them by absolute
// path so the PDF renderer can resolve them from any working directory.
package gallery
