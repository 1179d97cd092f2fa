// Package memory implements the translation memory: a lookup of already
// translated (source text, target language) pairs so identical cells across
// rows, files, and repeated runs cost a single API call.
package memory
