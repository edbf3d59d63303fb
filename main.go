package main

import "github.com/outlawjm0017-rgb/Infectious-diseases-analysis-dashboard/cmd"

func main() {
	cmd.Execute()
}
