package main

import "github.com/sadopc/interntrack/cmd"

func main() {
	cmd.Execute()
}
