package main

import "github.com/tayloree/fabric-chat/cmd"

func main() {
	cmd.Execute()
}
