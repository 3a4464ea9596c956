package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"recipefinder"
	"recipefinder/app"
	"recipefinder/detail"
	"recipefinder/favorites"
	"recipefinder/mealdb"
	"recipefinder/recipes"
	"recipefinder/tools"
)

const usage = `usage: recipefinder <command> [flags] [args]

commands:
  search     [-category NAME] [-q TERM]   list recipes matching the filters
  categories                              list recipe categories
  show       [-servings N] [-dump] ID     show one recipe
  favorites  [-category NAME] [-q TERM]   list saved favorites
  toggle     ID                           add or remove a favorite
  follow     ID                           print favorite state changes for a recipe
  theme      [on|off|toggle]              show or change dark mode
  tool       NAME [JSON]                  run a tool with JSON input
`

var errUsage = errors.New("invalid usage")

type commands struct {
	app           *app.App
	out           io.Writer
	watchInterval time.Duration
}

func (c *commands) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "search":
		return c.search(ctx, args)
	case "categories":
		return c.categories(ctx)
	case "show":
		return c.show(ctx, args)
	case "favorites":
		return c.favorites(ctx, args)
	case "toggle":
		return c.toggle(ctx, args)
	case "follow":
		return c.follow(ctx, args)
	case "theme":
		return c.theme(ctx, args)
	case "tool":
		return c.tool(ctx, args)
	}
	fmt.Fprint(c.out, usage)
	return fmt.Errorf("unknown command %q: %w", name, errUsage)
}

func filterFlags(name string, args []string) (recipes.FilterState, []string, error) {
	var state recipes.FilterState
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&state.Category, "category", recipes.AllCategories, "category to show")
	fs.StringVar(&state.SearchTerm, "q", "", "search term")
	if err := fs.Parse(args); err != nil {
		return state, nil, err
	}
	return state, fs.Args(), nil
}

func (c *commands) printRecipes(list []mealdb.Recipe, state recipes.FilterState) {
	if len(list) == 0 {
		fmt.Fprintln(c.out, state.EmptyMessage())
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tAREA")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Category, r.Area)
	}
	tw.Flush() // nolint: errcheck
}

func (c *commands) search(ctx context.Context, args []string) error {
	state, _, err := filterFlags("search", args)
	if err != nil {
		return err
	}
	all, err := c.app.Source.FetchAll(ctx)
	if err != nil {
		return errors.New(recipes.UserMessage(err))
	}
	c.printRecipes(state.Apply(all), state)
	return nil
}

func (c *commands) categories(ctx context.Context) error {
	names, err := c.app.Source.Categories(ctx)
	if err != nil {
		return errors.New(recipes.UserMessage(err))
	}
	for _, n := range names {
		fmt.Fprintln(c.out, n)
	}
	return nil
}

func (c *commands) show(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	servings := fs.Int("servings", 1, "servings to scale ingredients for")
	dump := fs.Bool("dump", false, "dump the raw recipe record")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("show needs exactly one recipe id: %w", errUsage)
	}

	r, err := c.app.Source.Lookup(ctx, fs.Arg(0))
	if err != nil {
		return errors.New(recipes.UserMessage(err))
	}
	if *dump {
		recipefinder.Dump(r)
	}

	view := detail.NewView()
	view.Load(r)
	view.SetServings(*servings)
	d, err := view.Render()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s\n%s · %s\n\n%s\n\n", d.Name, d.Category, d.Area, d.Summary)
	fmt.Fprintf(c.out, "Ingredients (servings: %d)\n", d.Servings)
	for _, l := range d.Ingredients {
		fmt.Fprintf(c.out, "  - %s %s\n", l.Measure, l.Ingredient)
	}
	fmt.Fprintln(c.out, "\nInstructions")
	for i, step := range d.Steps {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, step)
	}
	if d.EmbedURL != "" {
		fmt.Fprintf(c.out, "\nVideo: %s\n", d.EmbedURL)
	}
	if c.app.Favorites.Contains(ctx, d.ID) {
		fmt.Fprintln(c.out, "\n★ in favorites")
	}
	return nil
}

func (c *commands) favorites(ctx context.Context, args []string) error {
	state, _, err := filterFlags("favorites", args)
	if err != nil {
		return err
	}
	saved := c.app.Favorites.Read(ctx)
	if len(saved) == 0 {
		fmt.Fprintln(c.out, "No favorites yet")
		return nil
	}
	c.printRecipes(state.Apply(saved), state)
	return nil
}

func (c *commands) toggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("toggle needs exactly one recipe id: %w", errUsage)
	}
	out, err := c.app.Tools.Execute(ctx, tools.Call{Name: "favorite_toggle", Input: map[string]any{"id": args[0]}})
	if err != nil {
		return err
	}
	if fav, _ := out["favorite"].(bool); fav {
		fmt.Fprintf(c.out, "%s added to favorites\n", args[0])
	} else {
		fmt.Fprintf(c.out, "%s removed from favorites\n", args[0])
	}
	return nil
}

// follow mounts a favorites hook on one recipe and prints every state change
// until ctx is done, picking up toggles made by other processes.
func (c *commands) follow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("follow needs exactly one recipe id: %w", errUsage)
	}
	interval := c.watchInterval
	if interval <= 0 {
		interval = time.Second
	}

	hook := favorites.NewHook(c.app.Favorites)
	hook.OnChange(func(s favorites.State) {
		fmt.Fprintf(c.out, "%s %s\n", args[0], s)
	})
	hook.Mount(ctx, args[0])
	defer hook.Unmount()

	c.app.Favorites.Watch(ctx, interval)
	return nil
}

func (c *commands) theme(ctx context.Context, args []string) error {
	var (
		dark bool
		err  error
	)
	switch strings.Join(args, " ") {
	case "":
		dark = c.app.Theme.DarkMode(ctx)
	case "on":
		dark, err = true, c.app.Theme.SetDarkMode(ctx, true)
	case "off":
		dark, err = false, c.app.Theme.SetDarkMode(ctx, false)
	case "toggle":
		dark, err = c.app.Theme.Toggle(ctx)
	default:
		return fmt.Errorf("theme takes on, off or toggle: %w", errUsage)
	}
	if err != nil {
		return err
	}
	if dark {
		fmt.Fprintln(c.out, "dark")
	} else {
		fmt.Fprintln(c.out, "light")
	}
	return nil
}

func (c *commands) tool(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("tool needs a name and optional JSON input: %w", errUsage)
	}
	input := map[string]any{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &input); err != nil {
			return fmt.Errorf("tool input must be a JSON object: %w", err)
		}
	}

	out, err := c.app.Tools.Execute(ctx, tools.Call{Name: args[0], Input: input})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
