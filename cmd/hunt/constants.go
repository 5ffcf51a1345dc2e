package main

// Valid parse output formats.
var validFormats = []string{"json", "csv", "markdown"}
