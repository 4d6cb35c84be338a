package workspace

import (
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"

	"pagecraft/common"
)

// Commands returns project subcommands.
func Commands(onUsageError cli.OnUsageErrorFunc) []*cli.Command {
	jsonFlag := func() cli.Flag {
		return &cli.BoolFlag{Name: "json", Usage: "output JSON instead of table"}
	}

	return []*cli.Command{
		{
			Name:         "new",
			Usage:        "Creates new project file",
			OnUsageError: onUsageError,
			Action:       New,
			ArgsUsage:    "[NAME]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "type", Aliases: []string{"t"},
					Usage: "content `TYPE` (supported types: " + strings.Join(common.ContentTypeNames(), ", ") + "), default from configuration"},
				&cli.StringFlag{Name: "theme", Usage: "theme `ID`, default from configuration"},
				&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "replace existing project file"},
			},
		},
		{
			Name:         "add",
			Usage:        "Appends items built from layouts",
			OnUsageError: onUsageError,
			Action:       Add,
			ArgsUsage:    "LAYOUT [LAYOUT...]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "animation", Aliases: []string{"a"},
					Usage: "entrance `ANIMATION` (supported: " + strings.Join(common.AnimationNames(), ", ") + ")"},
			},
		},
		{
			Name:         "set",
			Usage:        "Changes item content, style, animation or layout",
			OnUsageError: onUsageError,
			Action:       Set,
			ArgsUsage:    "ITEM [SLOT VALUE...]",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "style", Aliases: []string{"s"}, Usage: "style override `PROPERTY=VALUE`, empty value removes override"},
				&cli.StringFlag{Name: "animation", Aliases: []string{"a"}, Usage: "entrance `ANIMATION`"},
				&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Usage: "switch item to layout `ID`, content is replaced by placeholders"},
			},
			CustomHelpTemplate: fmt.Sprintf(`%s
ITEM:
    item id or its position (starting with 1)

VALUE:
    text, "\n" starts new line. Metric slots take "value|label|trend".
`, cli.CommandHelpTemplate),
		},
		{
			Name:         "theme",
			Usage:        "Applies theme to the whole project",
			OnUsageError: onUsageError,
			Action:       Theme,
			ArgsUsage:    "THEME",
		},
		{
			Name:         "move",
			Usage:        "Moves item to another position",
			OnUsageError: onUsageError,
			Action:       Move,
			ArgsUsage:    "ITEM POSITION",
		},
		{
			Name:         "remove",
			Usage:        "Removes items",
			OnUsageError: onUsageError,
			Action:       Remove,
			ArgsUsage:    "ITEM [ITEM...]",
		},
		{
			Name:         "duplicate",
			Usage:        "Copies item placing copy after it",
			OnUsageError: onUsageError,
			Action:       Duplicate,
			ArgsUsage:    "ITEM",
		},
		{
			Name:         "show",
			Usage:        "Shows project summary",
			OnUsageError: onUsageError,
			Action:       Show,
			Flags: []cli.Flag{
				jsonFlag(),
				&cli.BoolFlag{Name: "dump", Usage: "output rendered fragment tree"},
			},
		},
		{
			Name:         "validate",
			Usage:        "Checks item content against layout constraints",
			OnUsageError: onUsageError,
			Action:       Validate,
			ArgsUsage:    "[ITEM...]",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "strict", Usage: "fail when any item is invalid"},
			},
		},
		{
			Name:         "layouts",
			Usage:        "Lists catalog layouts",
			OnUsageError: onUsageError,
			Action:       Layouts,
			ArgsUsage:    "[CATEGORY|TYPE]",
			Flags:        []cli.Flag{jsonFlag()},
		},
		{
			Name:         "themes",
			Usage:        "Lists catalog themes",
			OnUsageError: onUsageError,
			Action:       Themes,
			Flags:        []cli.Flag{jsonFlag()},
		},
		{
			Name:         "export",
			Usage:        "Exports project to specified format",
			OnUsageError: onUsageError,
			Action:       Export,
			ArgsUsage:    "FORMAT [DESTINATION]",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "overwrite existing output file"},
				&cli.BoolFlag{Name: "abort-on-error", Usage: "stop on first item which cannot be exported"},
			},
			CustomHelpTemplate: fmt.Sprintf(`%s
FORMAT:
    one of %s

DESTINATION:
    always a path, output file name is derived from project name or
    configured template, if absent - current working directory
`, cli.CommandHelpTemplate, strings.Join(common.ExportFmtNames(), ", ")),
		},
		{
			Name:         "serve",
			Usage:        "Serves project tools over HTTP",
			OnUsageError: onUsageError,
			Action:       Serve,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "listen", Usage: "`ADDRESS` to listen on, default from configuration"},
				&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "serve project stored under `KEY` instead of project file"},
			},
		},
		{
			Name:            "store",
			Usage:           "Manages project store",
			HideHelpCommand: true,
			Commands: []*cli.Command{
				{Name: "save", Usage: "Stores project file", ArgsUsage: "[KEY]", Action: StoreSave, OnUsageError: onUsageError},
				{Name: "load", Usage: "Restores project file from store", ArgsUsage: "KEY", Action: StoreLoad, OnUsageError: onUsageError},
				{Name: "list", Usage: "Lists stored projects", Action: StoreList, OnUsageError: onUsageError, Flags: []cli.Flag{jsonFlag()}},
				{Name: "delete", Usage: "Deletes stored projects", ArgsUsage: "KEY [KEY...]", Action: StoreDelete, OnUsageError: onUsageError},
			},
		},
	}
}
