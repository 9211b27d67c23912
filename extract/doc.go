// Package extract converts uploaded documents to plain text.
package extract
