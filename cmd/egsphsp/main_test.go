/*
 * main_test.go, part of egsphsp.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	phsp "github.com/rmera/egsphsp"
)

// run executes the root command with args and returns what it printed on
// stdout. Log messages go to stderr and are discarded.
func run(Te *testing.T, args ...string) (string, error) {
	Te.Helper()
	cmd := newRootCommand()
	var out, logs bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// cliFile writes a MODE0 file of n particles with values that survive float32
// arithmetic exactly.
func cliFile(Te *testing.T, name string, n int) string {
	Te.Helper()
	ps := make([]phsp.Particle, n)
	photons := 0
	for i := range ps {
		charge := i%3 - 1
		if charge == 0 {
			photons++
		}
		ps[i] = phsp.Particle{
			Latch:       phsp.NewLatch(false, charge, false, 0, 0),
			TotalEnergy: 1 + float32(i)/4,
			X:           float32(i) + 0.5,
			Y:           -float32(i) - 0.25,
			XCos:        0.5,
			YCos:        -0.5,
			Weight:      1,
		}
	}
	H := phsp.Header{Mode: phsp.Mode0, TotalParticles: int32(n), TotalPhotons: int32(photons),
		MinEnergy: 0.1, MaxEnergy: 1 + float32(n-1)/4, TotalParticlesInSource: 100}
	if err := phsp.WriteFile(name, H, ps); err != nil {
		Te.Fatal(err)
	}
	return name
}

func setupCLI(Te *testing.T) string {
	Te.Helper()
	dir := Te.TempDir()
	Te.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func sameBytes(Te *testing.T, a, b string) bool {
	Te.Helper()
	ba, err := os.ReadFile(a)
	if err != nil {
		Te.Fatal(err)
	}
	bb, err := os.ReadFile(b)
	if err != nil {
		Te.Fatal(err)
	}
	return bytes.Equal(ba, bb)
}

func TestTransformCommands(Te *testing.T) {
	dir := setupCLI(Te)
	src := cliFile(Te, filepath.Join(dir, "src.egsphsp1"), 40)
	dst := filepath.Join(dir, "dst.egsphsp1")
	if _, err := run(Te, "translate", src, dst, "--x=1.5", "--y=-2", "--chunk-size=29"); err != nil {
		Te.Fatal(err)
	}
	if sameBytes(Te, src, dst) {
		Te.Fatal("translation changed nothing")
	}
	if _, err := run(Te, "translate", "-i", dst, "--x=-1.5", "--y=2"); err != nil {
		Te.Fatal(err)
	}
	if !sameBytes(Te, src, dst) {
		Te.Error("translating back in place did not restore the file")
	}
	if _, err := os.Stat(dst + ".lock"); err == nil {
		Te.Error("in-place transform left a lock file")
	}
	for i := 0; i < 2; i++ {
		if _, err := run(Te, "reflect", "--in-place", dst, "--x=1", "--y=0"); err != nil {
			Te.Fatal(err)
		}
	}
	if !sameBytes(Te, src, dst) {
		Te.Error("reflecting twice did not restore the file")
	}
	if _, err := run(Te, "rotate", src, dst, "--angle=90"); err != nil {
		Te.Fatal(err)
	}
	_, ps, err := phsp.ReadFile(dst)
	if err != nil {
		Te.Fatal(err)
	}
	//(0.5, -0.25) turned a quarter counter-clockwise is (0.25, 0.5)
	if d := ps[0].X - 0.25; d > 1e-6 || d < -1e-6 {
		Te.Errorf("rotated x is %g", ps[0].X)
	}
	if _, err := run(Te, "translate", src); err == nil {
		Te.Error("missing destination accepted")
	}
	if _, err := run(Te, "translate", "-i", src, dst); err == nil {
		Te.Error("destination accepted with --in-place")
	}
	if _, err := run(Te, "reflect", src, dst, "--x=0", "--y=0"); err == nil {
		Te.Error("degenerate mirror line accepted")
	}
	if _, err := run(Te, "translate", "-i", filepath.Join(dir, "missing.egsphsp1"), "--x=1"); err == nil {
		Te.Error("missing file accepted")
	}
	if _, err := os.Stat(filepath.Join(dir, "missing.egsphsp1")); err == nil {
		Te.Error("in-place transform of a missing file created it")
	}
}

func TestCombineAndInfo(Te *testing.T) {
	dir := setupCLI(Te)
	a := cliFile(Te, filepath.Join(dir, "a.egsphsp1"), 30)
	b := cliFile(Te, filepath.Join(dir, "b.egsphsp1"), 12)
	out := filepath.Join(dir, "ab.egsphsp1")
	msg, err := run(Te, "combine", a, b, "-o", out)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(msg, "42 records") {
		Te.Errorf("combine output %q", msg)
	}
	H, err := phsp.OpenHeader(out)
	if err != nil {
		Te.Fatal(err)
	}
	if H.TotalParticles != 42 || H.TotalPhotons != 14 || H.TotalParticlesInSource != 200 {
		Te.Errorf("merged header %v", H)
	}
	if _, err := os.Stat(out + ".lock"); err == nil {
		Te.Error("combine left its lock file")
	}
	if _, err := run(Te, "combine", a, b); err == nil {
		Te.Error("combine without --output accepted")
	}
	info, err := run(Te, "info", a, out)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(info, "MODE0") || !strings.Contains(info, "ab.egsphsp1") {
		Te.Errorf("info output:\n%s", info)
	}
	bad := filepath.Join(dir, "bad.egsphsp1")
	if err := os.WriteFile(bad, []byte("MODE9 not a phase-space file"), 0o644); err != nil {
		Te.Fatal(err)
	}
	if _, err := run(Te, "info", a, bad); err == nil {
		Te.Error("info accepted an invalid file")
	}
}

func TestCompareCommand(Te *testing.T) {
	dir := setupCLI(Te)
	a := cliFile(Te, filepath.Join(dir, "a.egsphsp1"), 20)
	b := filepath.Join(dir, "b.egsphsp1")
	if _, err := run(Te, "translate", a, b, "--x=0", "--y=0"); err != nil {
		Te.Fatal(err)
	}
	msg, err := run(Te, "compare", a, b)
	if err != nil || !strings.Contains(msg, "Files are equal") {
		Te.Fatalf("identical files: %v\n%s", err, msg)
	}
	if _, err := run(Te, "translate", "-i", b, "--x=0.001"); err != nil {
		Te.Fatal(err)
	}
	if _, err := run(Te, "compare", a, b); err == nil {
		Te.Error("shifted files reported equal")
	}
	if _, err := run(Te, "compare", a, b, "--tol=0.01"); err != nil {
		Te.Errorf("shift within tolerance: %v", err)
	}
}

func TestStatsJSON(Te *testing.T) {
	dir := setupCLI(Te)
	a := cliFile(Te, filepath.Join(dir, "a.egsphsp1"), 30)
	out, err := run(Te, "stats", a, "--json", "--bins=10")
	if err != nil {
		Te.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		Te.Fatalf("%v\n%s", err, out)
	}
	if got["records"] != 30.0 || got["photons"] != 10.0 || got["electrons"] != 10.0 {
		Te.Errorf("unexpected summary %v", got)
	}
	table, err := run(Te, "stats", a)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(table, "Records") || !strings.Contains(table, "kinetic E (MeV)") {
		Te.Errorf("stats table:\n%s", table)
	}
}

func TestCompressCommands(Te *testing.T) {
	dir := setupCLI(Te)
	a := cliFile(Te, filepath.Join(dir, "a.egsphsp1"), 25)
	z := filepath.Join(dir, "a.egsphsp1.gz")
	back := filepath.Join(dir, "back.egsphsp1")
	if _, err := run(Te, "compress", a, z, "--level=9"); err != nil {
		Te.Fatal(err)
	}
	if _, err := run(Te, "decompress", z, back); err != nil {
		Te.Fatal(err)
	}
	if !sameBytes(Te, a, back) {
		Te.Error("compress then decompress changed the file")
	}
}

func TestConfigCommands(Te *testing.T) {
	dir := setupCLI(Te)
	path := filepath.Join(dir, "conf", "egsphsp.toml")
	if _, err := run(Te, "config", "init", "--path", path); err != nil {
		Te.Fatal(err)
	}
	if _, err := run(Te, "config", "init", "--path", path); err == nil {
		Te.Error("config init overwrote a file")
	}
	msg, err := run(Te, "--config", path, "config", "validate")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(msg, "Configuration valid") || !strings.Contains(msg, "4096") {
		Te.Errorf("validate output:\n%s", msg)
	}
	if err := os.WriteFile(path, []byte("[stream]\nchunk_size = -1\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	a := cliFile(Te, filepath.Join(dir, "a.egsphsp1"), 3)
	if _, err := run(Te, "--config", path, "info", a); err == nil {
		Te.Error("invalid configuration accepted")
	}
	if _, err := run(Te, "--log-format", "xml", "info", a); err == nil {
		Te.Error("invalid log format accepted")
	}
}

func TestPlotCommand(Te *testing.T) {
	dir := setupCLI(Te)
	a := cliFile(Te, filepath.Join(dir, "a.egsphsp1"), 60)
	prefix := filepath.Join(dir, "plots", "a")
	if err := os.MkdirAll(filepath.Dir(prefix), 0o755); err != nil {
		Te.Fatal(err)
	}
	if _, err := run(Te, "plot", a, "--prefix", prefix, "--format", "svg", "--bins=20"); err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{prefix + "_spectrum.svg", prefix + "_positions.svg"} {
		if info, err := os.Stat(name); err != nil || info.Size() == 0 {
			Te.Errorf("%s: %v", name, err)
		}
	}
	if _, err := run(Te, "plot", a, "--format", "bmp"); err == nil {
		Te.Error("unsupported format accepted")
	}
}

func TestRenderTable(Te *testing.T) {
	got := renderTable([]string{"Name", "N"}, [][]string{{"x", "1"}, {"yy", "22"}}, 1)
	for _, want := range []string{"│ x    │  1 │", "│ yy   │ 22 │"} {
		if !strings.Contains(got, want) {
			Te.Errorf("missing %q in\n%s", want, got)
		}
	}
}
