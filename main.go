// SPDX-License-Identifier: MPL-2.0

package main

import cmd "cepack-cli/cmd/cepack"

func main() {
	cmd.Execute()
}
