package main

import "github.com/finsight-labs/finsight/cmd"

func main() {
	cmd.Execute()
}
