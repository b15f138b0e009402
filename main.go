package main

import "github.com/kanbandesk/kanbandesk/cmd"

func main() {
	cmd.Execute()
}
