// phiremockctl drives a running Phiremock server from the command line.
package main

import "github.com/getmockd/phiremock/pkg/cli"

func main() {
	cli.Execute()
}
