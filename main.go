// SPDX-License-Identifier: MPL-2.0

package main

import cmd "canvasctl/cmd/canvasctl"

func main() {
	cmd.Execute()
}
