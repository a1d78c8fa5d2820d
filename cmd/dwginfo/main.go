// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cadkit/dwg"
)

func prettyPrint(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "\t"); err != nil {
		return string(raw)
	}
	return buf.String()
}

func dumpFile(filename string, cmd *cobra.Command) {
	f, err := dwg.New(filename, &dwg.Options{})
	if err != nil {
		log.Printf("error opening %s: %v", filename, err)
		return
	}
	defer f.Close()

	wantVersion, _ := cmd.Flags().GetBool("version")
	if wantVersion {
		fmt.Println(prettyPrint(f.Version()))
	}

	wantSections, _ := cmd.Flags().GetBool("sections")
	if wantSections {
		fmt.Println(prettyPrint(f.Sections()))
	}

	wantObjects, _ := cmd.Flags().GetBool("objects")
	if wantObjects {
		fmt.Println(prettyPrint(f.ObjectHeaders()))
	}

	wantStats, _ := cmd.Flags().GetBool("stats")
	if wantStats {
		fmt.Println(prettyPrint(f.Stats()))
	}

	wantDiagnostics, _ := cmd.Flags().GetBool("diagnostics")
	if wantDiagnostics {
		fmt.Println(prettyPrint(f.Diagnostics()))
	}

	if typeName, _ := cmd.Flags().GetString("type"); typeName != "" {
		for _, hdr := range f.Query(typeName) {
			entity, err := f.Decode(hdr.Handle)
			if err != nil {
				log.Printf("handle %d: %v", hdr.Handle, err)
				continue
			}
			fmt.Println(prettyPrint(entity))
		}
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "dwginfo",
		Short: "A DWG drawing file inspector",
		Long:  "Reads AutoCAD DWG drawing files and reports their structure",
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Dumps a DWG file's structure",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dumpFile(args[0], cmd)
		},
	}

	dumpCmd.Flags().Bool("version", false, "Print the probed release version")
	dumpCmd.Flags().Bool("sections", false, "Dump the section locator table")
	dumpCmd.Flags().Bool("objects", false, "Dump the object header index")
	dumpCmd.Flags().Bool("stats", false, "Dump per-type object counts")
	dumpCmd.Flags().Bool("diagnostics", false, "Dump record-local decode failures")
	dumpCmd.Flags().String("type", "", "Decode and dump every object of the given type name")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
