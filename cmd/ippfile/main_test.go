/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Argument parsing tests
 */
package main

import "testing"

func TestParseArgvModeAndPaths(t *testing.T) {
	p := parseArgv([]string{"totext", "in.ipp", "out.txt"})
	if p.Mode != RunToText || p.InputPath != "in.ipp" || p.OutputPath != "out.txt" {
		t.Fatalf("parseArgv = %+v", p)
	}
}

func TestParseArgvFlagsBeforeAndAfterMode(t *testing.T) {
	p := parseArgv([]string{"-conf", "custom.conf", "dump", "-response", "in.ipp"})
	if p.Mode != RunDump || p.ConfPath != "custom.conf" || !p.Response || p.InputPath != "in.ipp" {
		t.Fatalf("parseArgv = %+v", p)
	}
}

func TestParseArgvDefaultsToStdio(t *testing.T) {
	p := parseArgv([]string{"check"})
	if p.Mode != RunCheck || p.InputPath != "" || p.OutputPath != "" {
		t.Fatalf("parseArgv = %+v", p)
	}
}
