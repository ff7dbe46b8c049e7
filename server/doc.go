// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package server provides the bootstrapping conventions for the status console
executable: command line flags, Viper configuration, and signal handling.
*/
package server
