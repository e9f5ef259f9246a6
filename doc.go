// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// memoctl is the main package for the memoctl command line tool. It wires the
// CLI, delegates the range-sum and Fibonacci benchmarks to internal packages,
// and serves as the entry point.
package main
