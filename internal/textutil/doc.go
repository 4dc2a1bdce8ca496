// Package textutil provides text processing utilities, primarily filename
// sanitization for output paths derived from video titles.
package textutil
