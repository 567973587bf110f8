package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/notepid/roomielink/internal/app"
)

// env is what every command runs against.
type env struct {
	app *app.App
	out io.Writer
}

type command struct {
	usage   string
	summary string
	run     func(e *env, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"register-student":    {"--username U --password P --email E --name N --university SLUG", "create a student account and log in", cmdRegisterStudent},
		"register-landlord":   {"--username U --password P --email E --name N --company C", "create a landlord account and log in", cmdRegisterLandlord},
		"login":               {"[--as student|landlord] --username U --password P", "log in", cmdLogin},
		"logout":              {"", "log out", cmdLogout},
		"whoami":              {"", "show the logged-in user", cmdWhoami},
		"choose":              {"student|landlord", "remember which side of the site you use", cmdChoose},
		"welcome":             {"", "show the landing greeting for returning visitors", cmdWelcome},
		"posts":               {"[--mine] [--city C --university U --locality L --price P --room-type T --gender G --food F]", "browse roommate posts", cmdPosts},
		"post":                {"--content TEXT --city C --university U --locality L --price P --room-type T --gender G --food F [--tag T]...", "create a roommate post", cmdPost},
		"delete-post":         {"ID", "delete one of your posts", cmdDeletePost},
		"save":                {"ID", "save a post", cmdSave},
		"unsave":              {"ID", "remove a post from your saved posts", cmdUnsave},
		"saved":               {"", "list your saved posts", cmdSaved},
		"listings":            {"[--city C --locality L] [--status S]", "browse or manage listings", cmdListings},
		"listing":             {"--title T --price P --address A --city C [--locality L --bedrooms N --bathrooms N --sqft N --tag T]", "create a listing", cmdListing},
		"listing-status":      {"ID active|pending|inactive", "change a listing's status", cmdListingStatus},
		"delete-listing":      {"ID", "delete a listing", cmdDeleteListing},
		"applications":        {"[--status all|pending|approved|rejected]", "list applications to your listings", cmdApplications},
		"apply":               {"LISTING-ID --message TEXT [--budget B --move-in DATE --year Y]", "apply to a listing", cmdApply},
		"approve":             {"ID", "approve a pending application", cmdApprove},
		"reject":              {"ID", "reject a pending application", cmdReject},
		"stats":               {"", "show landlord dashboard counters", cmdStats},
		"send":                {"(--post ID | --listing ID | --application ID | --to ID --name N) [--wait] TEXT", "send a message", cmdSend},
		"conversations":       {"", "list your conversations", cmdConversations},
		"conversation":        {"CONTACT-ID", "show a conversation and mark it read", cmdConversation},
		"delete-conversation": {"CONTACT-ID", "delete a conversation", cmdDeleteConversation},
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := pflag.NewFlagSet("roomielink", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	configPath := flagSet.String("config", "config.yaml", "path to configuration file")
	help := flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(out, flagSet)
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if *help || len(rest) == 0 {
		printHelp(out, flagSet)
		return nil
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (see --help)", rest[0])
	}

	a, cleanup, err := app.New(*configPath, flagSet.Changed("config"))
	if err != nil {
		return err
	}
	defer cleanup()

	return cmd.run(&env{app: a, out: out}, rest[1:])
}

func printHelp(out io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(out, "RoomieLink - student housing and roommate matching.\n\nUsage: roomielink [--config FILE] COMMAND [flags]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-20s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(out, "\nGlobal flags:\n%s", flagSet.FlagUsages())
}

// newFlags returns the flag set of one command.
func newFlags(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: roomielink %s %s\n%s", name, commands[name].usage, flagSet.FlagUsages())
	}
	return flagSet
}

// idArg parses the single positional id of a command.
func idArg(name string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: roomielink %s %s", name, commands[name].usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
