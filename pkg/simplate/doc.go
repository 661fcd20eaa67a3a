// Package simplate parses simplate files.
//
// A simplate mixes request logic with one or more content pages. Pages are
// separated by a line holding only a form feed character (or the alternative
// marker "[---]"):
//
//	greeting = "Hello, " + qs.name
//	^L
//	#!stdlib_format via text/plain
//	{greeting}
//	^L
//	#!json_dump via application/json
//	{"greeting": greeting}
//
// A file with a single page has no logic. With two or more pages the first one
// is logic and the rest are content pages.
//
// # Speclines
//
// A content page may start with a specline naming its renderer and/or media type:
//
//	#!markdown                   renderer only
//	#!markdown via text/html     renderer and media type
//	#!application/json           media type only (token contains "/")
//
// # Rendered and Negotiated Resources
//
// A file named "name.ext.spt" is rendered: its media type comes from ext and it
// holds exactly one content page. A file named "name.spt" is negotiated: the
// client's Accept header picks among its content pages by declared media type.
package simplate
