package main

import "github.com/northloop/chatgpt-backup/cmd"

func main() {
	cmd.Execute()
}
