// Package render prints sessions, network forms, alerts and smart switch
// selections as plain text using pongo2 templates. The built-in templates
// live in templates/ and can be replaced wholesale with WithFS.
package render
