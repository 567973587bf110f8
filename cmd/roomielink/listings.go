package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/notepid/roomielink/internal/catalog"
	"github.com/notepid/roomielink/internal/filter"
	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/user"
)

func printListing(out io.Writer, l model.Listing, manage bool) {
	title := l.Title
	if title == "" {
		title = l.Address
	}
	fmt.Fprintf(out, "#%-5d %s - %s\n", l.ID, title, l.Price)
	fmt.Fprintf(out, "       %s  %s\n", l.Address, strings.Join(l.Details, " | "))
	if manage {
		fmt.Fprintf(out, "       status %s, %d views, %d applications, %d messages, posted %s\n",
			l.Status, l.Views, l.Applications, l.Messages, l.DatePosted)
	} else if l.Landlord != "" {
		fmt.Fprintf(out, "       by %s\n", l.Landlord)
	}
}

func cmdListings(e *env, args []string) error {
	flags := newFlags("listings")
	city := flags.String("city", "", "city")
	locality := flags.String("locality", "", "locality name or slug")
	status := flags.String("status", "", "listing status (landlords)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	u, err := e.app.Users.Require(e.app.Session)
	if err != nil {
		return err
	}

	var listings []model.Listing
	manage := u.Partition() == user.Landlords
	if manage {
		listings, err = e.app.Catalog.ListVisibleListings(e.app.Session)
	} else {
		listings, err = e.app.Catalog.BrowseListings(e.app.Session)
	}
	if err != nil {
		return err
	}

	state := filter.NewState()
	if *city != "" {
		state.SetListingCity(*city)
	}
	if *locality != "" {
		state.SetListingLocality(*locality)
	}
	set := state.Listings()
	if *status != "" && *status != filter.AllStatuses {
		set[filter.Status] = *status
	}
	listings = filter.Apply(listings, set, catalog.ListingDimensions)
	printActive(e.out, set)

	if len(listings) == 0 {
		fmt.Fprintln(e.out, "No listings found.")
		return nil
	}
	for _, l := range listings {
		printListing(e.out, l, manage)
	}
	return nil
}

func cmdListing(e *env, args []string) error {
	flags := newFlags("listing")
	var f catalog.ListingFields
	flags.StringVar(&f.Title, "title", "", "listing title")
	flags.StringVar(&f.Price, "price", "", "display price, e.g. $900/month")
	flags.StringVar(&f.Address, "address", "", "street address")
	flags.StringVar(&f.City, "city", "", "city")
	flags.StringVar(&f.Locality, "locality", "", "locality")
	flags.StringVar(&f.PriceRange, "price-range", "", "price band")
	flags.IntVar(&f.Bedrooms, "bedrooms", 1, "bedrooms")
	flags.Float64Var(&f.Bathrooms, "bathrooms", 1, "bathrooms")
	flags.IntVar(&f.SquareFeet, "sqft", 0, "area in square feet")
	flags.StringSliceVar(&f.Tags, "tag", nil, "amenity tag (repeatable)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	l, err := e.app.Catalog.CreateListing(e.app.Session, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Listing #%d created\n", l.ID)
	return nil
}

func cmdListingStatus(e *env, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: roomielink listing-status %s", commands["listing-status"].usage)
	}
	id, err := idArg("listing-status", args[:1])
	if err != nil {
		return err
	}
	status := model.ListingStatus(args[1])
	if err := e.app.Catalog.SetListingStatus(e.app.Session, id, status); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Listing #%d is now %s\n", id, status)
	return nil
}

func cmdDeleteListing(e *env, args []string) error {
	id, err := idArg("delete-listing", args)
	if err != nil {
		return err
	}
	if err := e.app.Catalog.DeleteListing(e.app.Session, id); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Listing deleted successfully")
	return nil
}

func cmdApplications(e *env, args []string) error {
	flags := newFlags("applications")
	status := flags.String("status", filter.AllStatuses, "all, pending, approved or rejected")
	if err := flags.Parse(args); err != nil {
		return err
	}

	apps, err := e.app.Catalog.Applications(e.app.Session)
	if err != nil {
		return err
	}
	state := filter.NewState()
	state.SetStatus(*status)
	apps = filter.Apply(apps, state.Applications(), catalog.ApplicationDimensions)

	noun := "applications"
	if *status != filter.AllStatuses {
		noun = *status + " applications"
	}
	if len(apps) == 0 {
		fmt.Fprintf(e.out, "No %s\n", noun)
		return nil
	}
	fmt.Fprintf(e.out, "%d %s\n", len(apps), noun)
	for _, a := range apps {
		fmt.Fprintf(e.out, "#%-5d [%s] %s (%s, %s)\n", a.ID, a.Status, a.Applicant.Name, a.Applicant.University, a.Applicant.Year)
		fmt.Fprintf(e.out, "       %s, %s\n", a.PropertyTitle, a.PropertyAddress)
		fmt.Fprintf(e.out, "       budget %s, move-in %s, applied %s\n", a.Budget, a.MoveInDate, a.AppliedDate)
	}
	return nil
}

func cmdApply(e *env, args []string) error {
	flags := newFlags("apply")
	var f catalog.ApplicationFields
	flags.StringVar(&f.Message, "message", "", "message to the landlord")
	flags.StringVar(&f.Budget, "budget", "", "budget")
	flags.StringVar(&f.MoveInDate, "move-in", "", "move-in date")
	flags.StringVar(&f.Year, "year", "", "year of study")
	if err := flags.Parse(args); err != nil {
		return err
	}
	id, err := idArg("apply", flags.Args())
	if err != nil {
		return err
	}

	app, err := e.app.Catalog.Apply(e.app.Session, id, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Application #%d sent for %s\n", app.ID, app.PropertyTitle)
	return nil
}

func cmdApprove(e *env, args []string) error {
	id, err := idArg("approve", args)
	if err != nil {
		return err
	}
	app, err := e.app.Catalog.Approve(e.app.Session, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Application from %s approved!\n", app.Applicant.Name)
	return nil
}

func cmdReject(e *env, args []string) error {
	id, err := idArg("reject", args)
	if err != nil {
		return err
	}
	app, err := e.app.Catalog.Reject(e.app.Session, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Application from %s rejected\n", app.Applicant.Name)
	return nil
}

func cmdStats(e *env, args []string) error {
	st, err := e.app.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Active listings:    %d\n", st.ActiveListings)
	fmt.Fprintf(e.out, "Total applications: %d\n", st.TotalApplications)
	fmt.Fprintf(e.out, "Unread messages:    %d\n", st.UnreadMessages)
	return nil
}
