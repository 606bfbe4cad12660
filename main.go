package main

import "github.com/theirongolddev/runwise/cmd"

func main() {
	cmd.Execute()
}
