package main

import "github.com/Ulv/chunked-downloader/cmd"

func main() {
	cmd.Execute()
}
