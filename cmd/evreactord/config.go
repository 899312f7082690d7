package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// defaultConfigGlob mirrors the reference CLI's compiled-in DEF_CFG: when
// neither -c nor -e is given, every *.cfg file under this directory is
// loaded.
const defaultConfigGlob = "/etc/evreactor/*.cfg"

// defaultDeviceDir is where event nodes are discovered and hotplug is
// watched, matching the reference CLI's DEV_INPUT.
const defaultDeviceDir = "/dev/input"

// config is the parsed command line, mirroring the reference CLI's getopt
// surface (-m -l -I -c -e -q, plus -h from the flag package's built-in
// help; there is no -v) via the standard flag package - this
// module's dependency pack has no CLI-flags library anywhere in it, and
// reaching for one just for six boolean/string flags would be
// over-engineering for a program this size.
type config struct {
	monitor bool
	logging bool
	info    bool
	quiet   bool
	cfgGlob string
	cfgText string

	patterns []string
}

var errUsage = errors.New("evreactord: usage error")

func parseConfig(args []string) (*config, error) {
	fs := flag.NewFlagSet("evreactord", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	c := &config{}
	fs.BoolVar(&c.monitor, "m", false, "monitor mode: print every observed event instead of evaluating bindings")
	fs.BoolVar(&c.logging, "l", false, "log every observed event in addition to evaluating bindings")
	fs.BoolVar(&c.info, "I", false, "print name/phys/match information for each candidate device")
	fs.BoolVar(&c.quiet, "q", false, "suppress non-fatal warnings")
	fs.StringVar(&c.cfgGlob, "c", "", "configuration file glob pattern")
	fs.StringVar(&c.cfgText, "e", "", "inline configuration text")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.patterns = fs.Args()

	if c.monitor {
		switch {
		case c.cfgGlob != "":
			return nil, fmt.Errorf("%w: -m and -c are mutually exclusive; try -l", errUsage)
		case c.cfgText != "":
			return nil, fmt.Errorf("%w: -m and -e are mutually exclusive; try -l", errUsage)
		case c.logging:
			return nil, fmt.Errorf("%w: -m and -l are mutually exclusive", errUsage)
		}
	}

	return c, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] <device...>\n\n", fs.Name())
	fmt.Fprint(os.Stderr,
		"  <device...> can be a pattern in the form of:\n"+
			"      name=<device name>  (e.g. name=\"AT keyboard\")\n"+
			"      phys=<device phys>  (e.g. phys=\"isa0060/input0\")\n"+
			"      dev=<device file>   (e.g. dev=/dev/input/event0)\n"+
			"      <device file>       (e.g. /dev/input/event0)\n\n")
	fs.PrintDefaults()
}
