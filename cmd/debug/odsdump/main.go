// odsdump reads ODS documents, reports package layout and conformance
// problems, and writes re-indented XML parts and style summaries for easy
// comparison between program versions.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"odsw/cmd/debug/internal/dumputil"
)

func main() {
	all := flag.Bool("all", false, "enable all dump flags (-parts, -xml, -styles)")
	parts := flag.Bool("parts", false, "dump package entries and problems into <file>-parts.txt")
	xml := flag.Bool("xml", false, "dump every XML part re-indented into <file>-<part>")
	styles := flag.Bool("styles", false, "dump styles and tables summary into <file>-styles.txt")
	overwrite := flag.Bool("overwrite", false, "overwrite existing output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: odsdump [-all] [-parts] [-xml] [-styles] [-overwrite] <file.ods> [outdir]\n\n")
		fmt.Fprintf(os.Stderr, "Without dump flags only checks package and prints problems found.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	if *all {
		*parts = true
		*xml = true
		*styles = true
	}

	defer func(startedAt time.Time) {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", time.Since(startedAt))
	}(time.Now())

	inPath := flag.Arg(0)
	outDir := ""
	if flag.NArg() == 2 {
		outDir = flag.Arg(1)
	}

	pkg, err := dumputil.ReadPackage(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", inPath, err)
		os.Exit(1)
	}

	problems := pkg.Problems()
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "problem: %s\n", p)
	}

	if *parts {
		if err := dumputil.WriteOutput(inPath, outDir, "-parts.txt", []byte(pkg.PartsReport()), *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "dump parts: %v\n", err)
			os.Exit(1)
		}
	}

	if *xml {
		for _, name := range pkg.XMLParts() {
			data, err := pkg.IndentedXML(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "dump %s: %v\n", name, err)
				os.Exit(1)
			}
			if err := dumputil.WriteOutput(inPath, outDir, "-"+dumputil.SanitizeFileComponent(name), data, *overwrite); err != nil {
				fmt.Fprintf(os.Stderr, "dump %s: %v\n", name, err)
				os.Exit(1)
			}
		}
	}

	if *styles {
		report, err := pkg.StylesReport()
		if err != nil {
			fmt.Fprintf(os.Stderr, "dump styles: %v\n", err)
			os.Exit(1)
		}
		if err := dumputil.WriteOutput(inPath, outDir, "-styles.txt", []byte(report), *overwrite); err != nil {
			fmt.Fprintf(os.Stderr, "dump styles: %v\n", err)
			os.Exit(1)
		}
	}

	if len(problems) > 0 {
		os.Exit(1)
	}
}
