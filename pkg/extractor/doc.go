// Package extractor finds image and video references in a pin page and
// collapses them into a deduplicated download list.
//
// Four strategies run over the parsed document in order:
//
//	img tags                      src, falling back to data-src
//	video tags                    src, falling back to the first <source>
//	video-component containers    data-video-src, no extension filter
//	application/ld+json scripts   contentUrl of a top-level object
//
// Extension checks are case-insensitive substring matches against the whole
// URL, so an extension embedded in a query string qualifies.
package extractor
