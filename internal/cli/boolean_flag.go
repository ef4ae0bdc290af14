package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	tolerantBooleanTypeName     = "bool"
	tolerantBooleanImplicitText = "true"
	tolerantBooleanAccepted     = "true, false, yes, no, on, off, 1, 0"
	errorBooleanValueFormat     = "invalid boolean value %q for --%s; accepted values: %s"
	argumentTerminator          = "--"
	longFlagPrefix              = "--"
	flagValueSeparator          = "="
)

var (
	trueBooleanLiterals  = []string{"true", "t", "1", "yes", "y", "on"}
	falseBooleanLiterals = []string{"false", "f", "0", "no", "n", "off"}
)

// interpretBooleanLiteral reports the value of input and whether it is a recognized literal.
// An empty input reads as true so that a bare flag enables it.
func interpretBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	for _, literal := range trueBooleanLiterals {
		if normalized == literal {
			return true, true
		}
	}
	for _, literal := range falseBooleanLiterals {
		if normalized == literal {
			return false, true
		}
	}
	return false, false
}

// tolerantBoolean is a pflag.Value accepting yes/no and on/off alongside the usual literals.
type tolerantBoolean struct {
	target *bool
	name   string
}

func (flagValue *tolerantBoolean) Set(input string) error {
	parsed, recognized := interpretBooleanLiteral(input)
	if !recognized {
		return fmt.Errorf(errorBooleanValueFormat, input, flagValue.name, tolerantBooleanAccepted)
	}
	*flagValue.target = parsed
	return nil
}

func (flagValue *tolerantBoolean) String() string {
	if flagValue == nil || flagValue.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*flagValue.target)
}

func (flagValue *tolerantBoolean) Type() string {
	return tolerantBooleanTypeName
}

// registerBooleanFlag binds a tolerant boolean flag to target, using its current value as the default.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	flagSet.Var(&tolerantBoolean{target: target, name: name}, name, usage)
	registered := flagSet.Lookup(name)
	registered.DefValue = strconv.FormatBool(*target)
	registered.NoOptDefVal = tolerantBooleanImplicitText
}

// joinBooleanFlagValues rewrites "--flag value" into "--flag=value" when flag is a boolean
// known to command or its descendants and value is a boolean literal. Other arguments,
// including positional paths, pass through untouched.
func joinBooleanFlagValues(command *cobra.Command, arguments []string) []string {
	booleanFlags := map[string]struct{}{}
	gatherBooleanFlags(command, booleanFlags)
	if len(booleanFlags) == 0 {
		return arguments
	}
	joined := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == argumentTerminator {
			joined = append(joined, arguments[index:]...)
			break
		}
		flagName := strings.TrimPrefix(argument, longFlagPrefix)
		_, isBoolean := booleanFlags[flagName]
		if isBoolean && flagName != argument && !strings.Contains(argument, flagValueSeparator) && index+1 < len(arguments) {
			candidate := arguments[index+1]
			if _, recognized := interpretBooleanLiteral(candidate); recognized && strings.TrimSpace(candidate) != "" && !strings.HasPrefix(candidate, "-") {
				joined = append(joined, argument+flagValueSeparator+candidate)
				index++
				continue
			}
		}
		joined = append(joined, argument)
	}
	return joined
}

func gatherBooleanFlags(command *cobra.Command, names map[string]struct{}) {
	if command == nil {
		return
	}
	collect := func(flag *pflag.Flag) {
		if flag.Value.Type() == tolerantBooleanTypeName {
			names[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		gatherBooleanFlags(child, names)
	}
}
