package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/notepid/roomielink/internal/conversation"
)

// resolveContact finds the contact behind a post, listing or application.
func resolveContact(e *env, post, listing, application int64, to, name string) (conversation.Contact, error) {
	switch {
	case post != 0:
		feed, err := e.app.Catalog.ListVisiblePosts(e.app.Session)
		if err != nil {
			return conversation.Contact{}, err
		}
		for _, p := range feed {
			if p.ID == post {
				return conversation.ContactFor(conversation.Roommate, p.Author.Username, p.Author.Name), nil
			}
		}
		return conversation.Contact{}, fmt.Errorf("post #%d not found", post)

	case listing != 0:
		listings, err := e.app.Catalog.BrowseListings(e.app.Session)
		if err != nil {
			return conversation.Contact{}, err
		}
		for _, l := range listings {
			if l.ID == listing {
				c := conversation.ContactFor(conversation.Listing, l.Owner, l.Landlord)
				c.PropertyTitle = l.Title
				return c, nil
			}
		}
		return conversation.Contact{}, fmt.Errorf("listing #%d not found", listing)

	case application != 0:
		apps, err := e.app.Catalog.Applications(e.app.Session)
		if err != nil {
			return conversation.Contact{}, err
		}
		for _, a := range apps {
			if a.ID == application {
				c := conversation.ContactFor(conversation.Application, "", a.Applicant.Name)
				c.PropertyTitle = a.PropertyTitle
				return c, nil
			}
		}
		return conversation.Contact{}, fmt.Errorf("application #%d not found", application)

	case to != "":
		if name == "" {
			name = to
		}
		return conversation.Contact{ID: to, Name: name, Kind: conversation.Inquiry}, nil
	}
	return conversation.Contact{}, errors.New("choose a recipient with --post, --listing, --application or --to")
}

func cmdSend(e *env, args []string) error {
	flags := newFlags("send")
	post := flags.Int64("post", 0, "message the author of a roommate post")
	listing := flags.Int64("listing", 0, "message the landlord of a listing")
	application := flags.Int64("application", 0, "message an applicant")
	to := flags.String("to", "", "contact id")
	name := flags.String("name", "", "contact display name (with --to)")
	wait := flags.Bool("wait", false, "wait for the reply")
	if err := flags.Parse(args); err != nil {
		return err
	}
	text := strings.Join(flags.Args(), " ")

	if _, err := e.app.Users.Require(e.app.Session); err != nil {
		return err
	}
	contact, err := resolveContact(e, *post, *listing, *application, *to, *name)
	if err != nil {
		return err
	}

	replies := make(chan conversation.Conversation, 1)
	convs, err := e.app.Conversations(func(c conversation.Conversation) {
		select {
		case replies <- c:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer convs.Close()

	c, err := convs.Send(contact, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Message sent to %s!\n", c.ContactName)

	if !*wait {
		return nil
	}
	select {
	case c := <-replies:
		fmt.Fprintf(e.out, "%s: %s\n", c.ContactName, c.LastMessage)
	case <-time.After(e.app.Config.Chat.ReplyDelay + 5*time.Second):
		fmt.Fprintln(e.out, "No reply yet.")
	}
	return nil
}

func cmdConversations(e *env, args []string) error {
	convs, err := e.app.Conversations(nil)
	if err != nil {
		return err
	}
	defer convs.Close()

	list, err := convs.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(e.out, "No conversations yet.")
		return nil
	}
	unread, err := convs.UnreadCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%d conversations, %d unread\n", len(list), unread)
	for _, c := range list {
		mark := " "
		if c.Unread {
			mark = "*"
		}
		title := ""
		if c.PropertyTitle != "" {
			title = " - " + c.PropertyTitle
		}
		fmt.Fprintf(e.out, "%s %-24s %s%s (%s)\n", mark, c.ContactID, c.ContactName, title, humanize.Time(c.LastTimestamp))
		fmt.Fprintf(e.out, "  %s\n", c.LastMessage)
	}
	return nil
}

func cmdConversation(e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: roomielink conversation %s", commands["conversation"].usage)
	}
	convs, err := e.app.Conversations(nil)
	if err != nil {
		return err
	}
	defer convs.Close()

	c, ok := convs.Open(args[0])
	if !ok {
		return fmt.Errorf("no conversation with %s", args[0])
	}
	fmt.Fprintf(e.out, "Conversation with %s\n", c.ContactName)
	for _, m := range c.History {
		fmt.Fprintf(e.out, "[%s] %s: %s\n", m.Timestamp.Format("15:04"), m.Sender, m.Message)
	}
	return convs.MarkRead(args[0])
}

func cmdDeleteConversation(e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: roomielink delete-conversation %s", commands["delete-conversation"].usage)
	}
	convs, err := e.app.Conversations(nil)
	if err != nil {
		return err
	}
	defer convs.Close()

	if err := convs.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Conversation deleted")
	return nil
}
