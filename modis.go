/*package modis computes the MODIS surface BRDF weights that a radiative
transfer model sees at each of its wavelengths.*/
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/phil-mansfield/modis/cmd"
	"github.com/phil-mansfield/modis/version"
)

var helpStrings = map[string]string {
	"inject": `The inject mode prints the MODIS weights that the host model sees at
each of its wavelengths. A column of wavelengths (nm) can be piped to stdin to
override the WavelengthsNM variable of the global config file.`,
	"jacobian": `The jacobian mode prints the derivative of one row of weights in the
host model with respect to each weight on the source grid. Use the Parameter
variable to pick the row.`,
	"plot": `The plot mode draws the source weights, their interpolation, and the
weights seen by the host model using matplotlib.`,

	"config": new(cmd.GlobalConfig).ExampleConfig(),
	"inject.config": cmd.ModeNames["inject"].ExampleConfig(),
	"jacobian.config": cmd.ModeNames["jacobian"].ExampleConfig(),
	"plot.config": cmd.ModeNames["plot"].ExampleConfig(),
}

var modeDescriptions = `My help modes are:
modis help
modis help [ inject | jacobian | plot ]
modis help [ config | inject.config | jacobian.config | plot.config ]

My analysis modes are:
modis inject   [flags] ____.config [____.inject.config]
modis jacobian [flags] ____.config [____.jacobian.config]
modis plot     [flags] ____.config [____.plot.config]

Any variable in a mode's config file can be set with a flag: --Name=value.`

func main() {
	args := os.Args
	if len(args) <= 1 {
		fmt.Fprintf(
			os.Stderr, "I was not supplied with a mode.\nFor help, type " +
			"'./modis help'.\n",
		)
		os.Exit(1)
	}

	if args[1] == "help" {
		switch len(args) - 2 {
		case 0:
			fmt.Println(modeDescriptions)
		case 1:
			text, ok := helpStrings[args[2]]
			if !ok {
				fmt.Printf("I don't recognize the help target '%s'\n", args[2])
			} else {
				fmt.Println(text)
			}
		default:
			fmt.Println("The help mode can only take a single argument.")
		}
		os.Exit(0)
	} else if args[1] == "version" {
		fmt.Printf("modis version %s\n", version.SourceVersion)
		os.Exit(0)
	}

	mode, ok := cmd.ModeNames[args[1]]
	if !ok {
		fmt.Fprintf(
			os.Stderr, "You passed me the mode '%s', which I don't " +
			"recognize.\nFor help, type './modis help'\n", args[1],
		)
		os.Exit(1)
	}

	var stdin []byte
	if args[1] != "plot" && stdinPiped() {
		var err error
		stdin, err = ioutil.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("Error reading stdin: %s.", err.Error())
		}
	}

	flags := getFlags(args)
	config, _ := getConfig(args)
	gConfig, err := getGlobalConfig(args)
	if err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	if err = mode.ReadConfig(config, flags); err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	out, err := mode.Run(gConfig, stdin)
	if err != nil {
		log.Fatalf("Error running mode %s:\n%s\n", args[1], err.Error())
	}

	for i := range out { fmt.Println(out[i]) }
}

// stdinPiped returns true if stdin is a pipe or file rather than a terminal.
func stdinPiped() bool {
	info, err := os.Stdin.Stat()
	if err != nil { return false }
	return info.Mode() & os.ModeCharDevice == 0
}

// getFlags reutrns the flag tokens from the command line arguments.
func getFlags(args []string) ([]string) {
	return args[2:len(args) - configNum(args)]
}

// getGlobalConfig reads the base config file named in the command line
// arguments or in $MODIS_GLOBAL_CONFIG.
func getGlobalConfig(args []string) (*cmd.GlobalConfig, error) {
	name := os.Getenv("MODIS_GLOBAL_CONFIG")
	if name != "" {
		if configNum(args) > 1 {
			return nil, fmt.Errorf("$MODIS_GLOBAL_CONFIG has been " +
				"set, so you may only pass a single config file as a " +
				"parameter.")
		}
	} else {
		switch configNum(args) {
		case 0:
			return nil, fmt.Errorf("No config files provided in command " +
				"line arguments.")
		case 1:
			name = args[len(args) - 1]
		case 2:
			name = args[len(args) - 2]
		default:
			return nil, fmt.Errorf("Passed too many config files as arguments.")
		}
	}

	config := &cmd.GlobalConfig{}
	if err := config.ReadConfig(name, nil); err != nil { return nil, err }
	return config, nil
}

// getConfig return the name of the mode-specific config file from the command
// line arguments.
func getConfig(args []string) (string, bool) {
	if os.Getenv("MODIS_GLOBAL_CONFIG") != "" && configNum(args) == 1 {
		return args[len(args) - 1], true
	} else if os.Getenv("MODIS_GLOBAL_CONFIG") == "" &&
		configNum(args) == 2 {

		return args[len(args) - 1], true
	}
	return "", false
}

// configNum returns the number of configuration files at the end of the
// argument list.
func configNum(args []string) int {
	num := 0
	for i := len(args) - 1; i >= 2 ; i-- {
		if isConfig(args[i]) {
			num++
		} else {
			break
		}
	}
	return num
}

// isConfig returns true if the given string is a config file name.
func isConfig(s string) bool {
	return len(s) >= 7 &&  s[len(s) - 7:] == ".config"
}
