/*package parse reads the "[section]\nName = value" config files used by every
mode of the modis tool, along with "--Name value" command line overrides.
*/
package parse

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

/////////////////////
// Conversion Code //
/////////////////////

type varType int
const (
	intVar varType = iota
	intsVar
	floatVar
	floatsVar
	stringVar
	stringsVar
	boolVar
	boolsVar
)

func (v varType) String() string {
	switch v {
	case intVar: return "int"
	case intsVar: return "int list"
	case floatVar: return "float"
	case floatsVar: return "float list"
	case stringVar: return "string"
	case stringsVar: return "string list"
	case boolVar: return "bool"
	case boolsVar: return "bool list"
	}
	panic("Impossible")
}

type conversionFunc func(string) bool

type ConfigVars struct {
	name string
	varNames []string
	varTypes []varType
	conversionFuncs []conversionFunc
}

func intConv(ptr *int64) conversionFunc {
	return func(s string) bool {
		i, err := strconv.Atoi(s)
		if err != nil { return false }
		*ptr = int64(i)
		return true
	}
}

func floatConv(ptr *float64) conversionFunc {
	return func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil { return false }
		*ptr = f
		return true
	}
}

func stringConv(ptr *string) conversionFunc {
	return func(s string) bool {
		*ptr = strings.Trim(s, " ")
		return true
	}
}

func boolConv(ptr *bool) conversionFunc {
	return func(s string) bool {
		b, err := strconv.ParseBool(s)
		if err != nil { return false }
		*ptr = b
		return true
	}
}

func strToList(a string) []string {
	if strings.Trim(a, " ") == "" { return []string{} }
	strs := strings.Split(a, ",")
	for i := range strs {
		strs[i] = strings.Trim(strs[i], " ")
	}
	return strs
}

func intsConv(ptr *[]int64) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		*ptr = []int64{}
		for j := range toks {
			i, err := strconv.Atoi(toks[j])
			if err != nil { return false }
			*ptr = append(*ptr, int64(i))
		}
		return true
	}
}

func floatsConv(ptr *[]float64) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		*ptr = []float64{}
		for j := range toks {
			f, err := strconv.ParseFloat(toks[j], 64)
			if err != nil { return false }
			*ptr = append(*ptr, f)
		}
		return true
	}
}

func stringsConv(ptr *[]string) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		*ptr = []string{}
		for j := range toks {
			*ptr = append(*ptr, toks[j])
		}
		return true
	}
}


func boolsConv(ptr *[]bool) conversionFunc {
	return func(s string) bool {
		toks := strToList(s)
		*ptr = []bool{}
		for j := range toks {
			b, err := strconv.ParseBool(toks[j])
			if err != nil { return false }
			*ptr = append(*ptr, b)
		}
		return true
	}
}

func NewConfigVars(name string) *ConfigVars {
	return &ConfigVars{name: name}
}

func (vars *ConfigVars) Int(ptr *int64, name string, value int64) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, intConv(ptr))
	vars.varTypes = append(vars.varTypes, intVar)
}

func (vars *ConfigVars) Float(ptr *float64, name string, value float64) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, floatConv(ptr))
	vars.varTypes = append(vars.varTypes, floatVar)
}

func (vars *ConfigVars) String(ptr *string, name string, value string) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, stringConv(ptr))
	vars.varTypes = append(vars.varTypes, stringVar)
}

func (vars *ConfigVars) Bool(ptr *bool, name string, value bool) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, boolConv(ptr))
	vars.varTypes = append(vars.varTypes, boolVar)
}

func (vars *ConfigVars) Ints(ptr *[]int64, name string, value []int64) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, intsConv(ptr))
	vars.varTypes = append(vars.varTypes, intsVar)
}

func (vars *ConfigVars) Floats(ptr *[]float64, name string, value []float64) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, floatsConv(ptr))
	vars.varTypes = append(vars.varTypes, floatsVar)
}

func (vars *ConfigVars) Strings(ptr *[]string, name string, value []string) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, stringsConv(ptr))
	vars.varTypes = append(vars.varTypes, stringsVar)
}

func (vars *ConfigVars) Bools(ptr *[]bool, name string, value []bool) {
	*ptr = value
	vars.varNames = append(vars.varNames, name)
	vars.conversionFuncs = append(vars.conversionFuncs, boolsConv(ptr))
	vars.varTypes = append(vars.varTypes, boolsVar)
}

//////////////////
// Parsing Code //
//////////////////

// ReadConfig reads the config file fname into vars.
func ReadConfig(fname string, vars *ConfigVars) error {
	bs, err := os.ReadFile(fname)
	if err != nil { return err }
	return ReadConfigText(fname, string(bs), vars)
}

// ReadConfigText parses the text of a config file into vars. source is only
// used to generate error messages.
func ReadConfigText(source, text string, vars *ConfigVars) error {
	vars.lowerNames()

	lines := strings.Split(strings.Replace(text, "\r\n", "\n", -1), "\n")
	lines, lineNums := removeComments(lines)
	for i := range lineNums { lineNums[i] ++ }

	if len(lines) == 0 || lines[0] != fmt.Sprintf("[%s]", vars.name) {
		return fmt.Errorf(
			"I expected the config file %s to have the header " +
			"[%s] at the top, but didn't find it.", source, vars.name,
		)
	}
	lines, lineNums = lines[1:], lineNums[1:]

	names, vals, errLine := associationList(lines)
	if errLine != -1 {
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because it " +
			"did not take the form of a variable assignment.",
			lineNums[errLine], source,
		)
	}

	if errLine = checkValidNames(names, vars); errLine != -1 {
		return fmt.Errorf(
			"Line %d of the config file %s assigns a value to the " +
			"variable '%s', but config files of type %s don't have that " +
			"variable.", lineNums[errLine], source, names[errLine], vars.name,
		)
	}

	if errLine1, errLine2 := checkDuplicateNames(names); errLine1 != -1 {
		return fmt.Errorf(
			"Lines %d and %d of the config file %s both assign a value to " +
			"the variable '%s'.", lineNums[errLine1], lineNums[errLine2],
			source, names[errLine1],
		)
	}

	if errLine = convertAssoc(names, vals, vars); errLine != -1 {
		return fmt.Errorf(
			"I could not parse line %d of the config file %s because %s",
			lineNums[errLine], source,
			typeError(names[errLine], vals[errLine], vars),
		)
	}

	return nil
}

// ReadFlags reads command line flags into vars. Flags take the form
// "--Name value [value ...]". Multiple values are joined into a single list.
func ReadFlags(flags []string, vars *ConfigVars) error {
	vars.lowerNames()

	names, vals := []string{}, []string{}
	for _, flag := range flags {
		if strings.HasPrefix(flag, "--") {
			name := strings.TrimLeft(flag, "-")
			if eq := strings.Index(name, "="); eq != -1 {
				names = append(names, strings.ToLower(name[:eq]))
				vals = append(vals, name[eq+1:])
				continue
			}
			names = append(names, strings.ToLower(name))
			vals = append(vals, "")
		} else if len(names) == 0 {
			return fmt.Errorf("The command line argument '%s' isn't " +
				"preceded by a flag.", flag)
		} else if last := len(vals) - 1; vals[last] == "" {
			vals[last] = flag
		} else {
			vals[last] = vals[last] + ", " + flag
		}
	}

	if i := checkValidNames(names, vars); i != -1 {
		return fmt.Errorf("The flag '--%s' doesn't correspond to any " +
			"variable in %s.", names[i], vars.name)
	}
	if i, j := checkDuplicateNames(names); i != -1 {
		return fmt.Errorf("The flag '--%s' was given %d times.",
			names[i], 1 + countName(names[j:], names[i]))
	}
	if i := convertAssoc(names, vals, vars); i != -1 {
		return fmt.Errorf("I could not parse the flag '--%s' because %s",
			names[i], typeError(names[i], vals[i], vars))
	}

	return nil
}

func (vars *ConfigVars) lowerNames() {
	for i := range vars.varNames {
		vars.varNames[i] = strings.ToLower(vars.varNames[i])
	}
}

func countName(names []string, name string) int {
	n := 0
	for i := range names {
		if names[i] == name { n++ }
	}
	return n
}

func typeError(name, val string, vars *ConfigVars) string {
	j := 0
	for ; j < len(vars.varNames); j++ {
		if vars.varNames[j] == name { break }
	}
	typeName := vars.varTypes[j].String()
	a := "a"
	if typeName[0] == 'i' { a = "an" }
	return fmt.Sprintf("'%s' expects values of type %s and '%s' cannot be " +
		"converted to %s %s.", vars.varNames[j], typeName, val, a, typeName)
}

func removeComments(lines []string) ([]string, []int) {
	out, lineNums := []string{}, []int{}
	for i := range lines {
		line := lines[i]
		if comment := strings.Index(line, "#"); comment != -1 {
			line = line[:comment]
		}
		line = strings.Trim(line, " \t")
		if len(line) == 0 { continue }
		out = append(out, line)
		lineNums = append(lineNums, i)
	}

	return out, lineNums
}

func associationList(lines []string) ([]string, []string, int) {
	names, vals := []string{}, []string{}
	for i := range lines {
		eq := strings.Index(lines[i], "=")
		if eq == -1 { return nil, nil, i }
		name := strings.ToLower(strings.Trim(lines[i][:eq], " \t"))
		if len(name) == 0 { return nil, nil, i }
		names = append(names, name)
		vals = append(vals, strings.Trim(lines[i][eq+1:], " \t"))
	}
	return names, vals, -1
}

func checkValidNames(names []string, vars *ConfigVars) int {
	for i := range names {
		found := false
		for j := range vars.varNames {
			if vars.varNames[j] == names[i] {
				found = true
				break
			}
		}
		if !found { return i }
	}
	return -1
}

func checkDuplicateNames(names []string) (int, int) {
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			if names[i] == names[j] { return i, j }
		}
	}
	return -1, -1
}

func convertAssoc(names, vals []string, vars *ConfigVars) int {
	for i := range names {
		j := 0
		for ; j < len(vars.varNames); j++ {
			if vars.varNames[j] == names[i] { break }
		}

		ok := vars.conversionFuncs[j](vals[i])
		if !ok { return i }
	}
	return -1
}
