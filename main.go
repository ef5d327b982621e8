// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/omnicore/restaurant-service/cmd"

func main() {
	cmd.Execute()
}
