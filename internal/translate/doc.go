// Package translate provides the DeepL translation client used by the
// batch pipeline, together with the source-text rules around it: which
// cells are worth sending at all, and how format placeholders survive the
// round trip through the API.
package translate
