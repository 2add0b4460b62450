package main

import "github.com/sunnybai72592/eternyx-haunted-hollow-sub002/cmd"

func main() {
	cmd.Execute()
}
