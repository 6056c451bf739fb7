// Package main provides the entry point for the jpnews CLI.
//
// jpnews stores Japanese news notes and annotates Japanese text with
// furigana, either over HTTP or from the command line.
//
// Usage:
//
//	jpnews serve
//	jpnews annotate 日本語を勉強します。
//	echo 東京都 | jpnews annotate --format bracket
//
// See --help for all available options.
package main

func main() {
	Execute()
}
