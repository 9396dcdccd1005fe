package main

import "github.com/jiragate/jiragate/cmd"

func main() {
	cmd.Execute()
}
