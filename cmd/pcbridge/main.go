/*
Copyright © 2025 pcbridge authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import "github.com/pcbridge/pcbridge/pkg/cli"

func main() {
	cli.Execute()
}
