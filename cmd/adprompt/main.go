package main

import "adprompt/internal/cli"

func main() {
	cli.Execute()
}
