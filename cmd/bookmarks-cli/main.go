package main

import "bookmarked/cmd/bookmarks-cli/cmd"

func main() {
	cmd.Execute()
}
