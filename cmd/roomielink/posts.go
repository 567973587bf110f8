package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/notepid/roomielink/internal/catalog"
	"github.com/notepid/roomielink/internal/filter"
	"github.com/notepid/roomielink/internal/model"
)

// roommateFilters registers the roommate filter flags on flags.
func roommateFilters(flags *pflag.FlagSet) map[filter.Dimension]*string {
	return map[filter.Dimension]*string{
		filter.City:           flags.String("city", "", "city (boston, newyork, ...)"),
		filter.University:     flags.String("university", "", "university slug"),
		filter.Locality:       flags.String("locality", "", "locality name or slug"),
		filter.Price:          flags.String("price", "", "price band (under-500, 500-700, 700-800, 800-1200, 1200-plus)"),
		filter.RoomType:       flags.String("room-type", "", "private or shared"),
		filter.Gender:         flags.String("gender", "", "male, female or mixed"),
		filter.Food:           flags.String("food", "", "vegetarian or non-vegetarian"),
		filter.Term:           flags.String("term", "", "academic term"),
		filter.GraduationYear: flags.String("grad-year", "", "graduation year or grad"),
	}
}

func printPost(out io.Writer, p model.Post, saved bool) {
	mark := " "
	if saved {
		mark = "*"
	}
	when := p.Timestamp
	if !p.CreatedAt.IsZero() {
		when = humanize.Time(p.CreatedAt)
	}
	fmt.Fprintf(out, "%s #%-5d %s (%s) - %s\n", mark, p.ID, p.Author.Name, p.Author.University, when)
	fmt.Fprintf(out, "         %s\n", p.Content)
	fmt.Fprintf(out, "         %s/%s  %s\n", p.City, p.Locality, strings.Join(p.Tags, ", "))
}

func cmdPosts(e *env, args []string) error {
	flags := newFlags("posts")
	mine := flags.Bool("mine", false, "only show your own posts")
	values := roommateFilters(flags)
	if err := flags.Parse(args); err != nil {
		return err
	}

	var (
		posts []model.Post
		err   error
	)
	if *mine {
		posts, err = e.app.Catalog.MyPosts(e.app.Session)
	} else {
		posts, err = e.app.Catalog.ListVisiblePosts(e.app.Session)
	}
	if err != nil {
		return err
	}

	state := filter.NewState()
	if c := *values[filter.City]; c != "" {
		state.SetCity(c)
	}
	for dim, v := range values {
		if dim != filter.City && *v != "" {
			state.Set(dim, *v)
		}
	}
	set := state.Roommates()
	posts = filter.Apply(posts, set, catalog.PostDimensions)
	printActive(e.out, set)

	if len(posts) == 0 {
		fmt.Fprintln(e.out, "No roommate posts found. Try adjusting your filters.")
		return nil
	}
	fmt.Fprintf(e.out, "Found %d roommate posts\n", len(posts))
	for _, p := range posts {
		printPost(e.out, p, e.app.Saved.IsSaved(e.app.Session, p.ID))
	}
	return nil
}

// printActive lists the filters in effect, if any.
func printActive(out io.Writer, set filter.Set) {
	dims := set.Active()
	if len(dims) == 0 {
		return
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%s=%s", d, set[d])
	}
	fmt.Fprintf(out, "Filtered by %s\n", strings.Join(parts, ", "))
}

func cmdPost(e *env, args []string) error {
	flags := newFlags("post")
	var f catalog.PostFields
	flags.StringVar(&f.Content, "content", "", "post text")
	flags.StringVar(&f.City, "city", "", "city")
	flags.StringVar(&f.University, "university", "", "university slug")
	flags.StringVar(&f.Locality, "locality", "", "locality")
	flags.StringVar(&f.Price, "price", "", "price band")
	flags.StringVar(&f.RoomType, "room-type", "", "private or shared")
	flags.StringVar(&f.Gender, "gender", "", "male, female or mixed")
	flags.StringVar(&f.Food, "food", "", "vegetarian or non-vegetarian")
	flags.StringVar(&f.Term, "term", "", "academic term")
	flags.StringVar(&f.GraduationYear, "grad-year", "", "graduation year or grad")
	flags.StringSliceVar(&f.Tags, "tag", nil, "extra tag (repeatable)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	p, err := e.app.Catalog.CreatePost(e.app.Session, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Post #%d created\n", p.ID)
	return nil
}

func cmdDeletePost(e *env, args []string) error {
	id, err := idArg("delete-post", args)
	if err != nil {
		return err
	}
	if err := e.app.Catalog.DeletePost(e.app.Session, id); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Post #%d deleted\n", id)
	return nil
}

func cmdSave(e *env, args []string) error {
	id, err := idArg("save", args)
	if err != nil {
		return err
	}
	ok, err := e.app.Saved.Save(e.app.Session, id)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(e.out, "Post saved!")
	} else {
		fmt.Fprintln(e.out, "Post already saved")
	}
	return nil
}

func cmdUnsave(e *env, args []string) error {
	id, err := idArg("unsave", args)
	if err != nil {
		return err
	}
	ok, err := e.app.Saved.Unsave(e.app.Session, id)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(e.out, "Post removed from saved")
	} else {
		fmt.Fprintln(e.out, "Post was not saved")
	}
	return nil
}

func cmdSaved(e *env, args []string) error {
	feed, err := e.app.Catalog.ListVisiblePosts(e.app.Session)
	if err != nil {
		return err
	}
	posts := e.app.Saved.SavedPosts(e.app.Session, feed)
	if len(posts) == 0 {
		fmt.Fprintln(e.out, "No saved posts yet.")
		return nil
	}
	fmt.Fprintf(e.out, "%d saved posts\n", e.app.Saved.Count(e.app.Session))
	for _, p := range posts {
		printPost(e.out, p, true)
	}
	return nil
}
