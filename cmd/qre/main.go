// Command qre estimates the physical resources of quantum algorithms.
package main

import "github.com/sarchlab/qre/cmd"

func main() {
	cmd.Execute()
}
