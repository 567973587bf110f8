package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/notepid/roomielink/internal/user"
)

func cmdRegisterStudent(e *env, args []string) error {
	return register(e, "register-student", user.Students, args)
}

func cmdRegisterLandlord(e *env, args []string) error {
	return register(e, "register-landlord", user.Landlords, args)
}

func register(e *env, name string, partition user.Partition, args []string) error {
	flags := newFlags(name)
	username := flags.String("username", "", "username")
	password := flags.String("password", "", "password")
	email := flags.String("email", "", "email address")
	fullName := flags.String("name", "", "full name")
	var profile user.Profile
	if partition == user.Students {
		flags.StringVar(&profile.University, "university", "", "university slug (e.g. mit, harvard, bu)")
	} else {
		flags.StringVar(&profile.Company, "company", "", "company name")
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	profile.Name = *fullName

	u, err := e.app.Users.CreateAccount(e.app.Session, partition, *username, *password, *email, profile)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Account created! Welcome %s!\n", u.Name)
	return nil
}

func cmdLogin(e *env, args []string) error {
	flags := newFlags("login")
	as := flags.String("as", "student", "account type: student or landlord")
	username := flags.String("username", "", "username")
	password := flags.String("password", "", "password")
	if err := flags.Parse(args); err != nil {
		return err
	}
	partition, ok := user.ParsePartition(*as)
	if !ok {
		return fmt.Errorf("unknown account type %q", *as)
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("please enter both username and password")
	}

	u, err := e.app.Users.Authenticate(e.app.Session, partition, *username, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Welcome back, %s!\n", u.Name)
	return nil
}

func cmdLogout(e *env, args []string) error {
	e.app.Users.Logout(e.app.Session)
	fmt.Fprintln(e.out, "Logged out successfully")
	return nil
}

func cmdWhoami(e *env, args []string) error {
	u, err := e.app.Users.Require(e.app.Session)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Welcome, %s!\n\n", u.FirstName())
	fmt.Fprintf(e.out, "Username:        %s\n", u.Username)
	fmt.Fprintf(e.out, "Name:            %s (%s)\n", u.Name, u.Initials)
	fmt.Fprintf(e.out, "Email:           %s\n", u.Email)
	fmt.Fprintf(e.out, "User type:       %s\n", u.UserType)
	if aff := u.Affiliation(); aff != "" {
		fmt.Fprintf(e.out, "Affiliation:     %s\n", aff)
	}
	fmt.Fprintf(e.out, "Account created: %s\n", u.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(e.out, "Last login:      %s\n", humanize.Time(u.LastLogin))
	if u.Partition() == user.Students {
		fmt.Fprintf(e.out, "Saved posts:     %d\n", len(u.SavedPosts))
	} else {
		fmt.Fprintf(e.out, "Listings:        %d\n", len(u.Listings))
	}
	return nil
}

func cmdChoose(e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: roomielink choose %s", commands["choose"].usage)
	}
	partition, ok := user.ParsePartition(args[0])
	if !ok {
		return fmt.Errorf("unknown user type %q", args[0])
	}
	if err := e.app.Landing.ChooseUserType(partition, time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Continuing as %s\n", partition.UserType())
	return nil
}

func cmdWelcome(e *env, args []string) error {
	if partition, ok := e.app.Landing.CheckReturning(time.Now()); ok {
		fmt.Fprintf(e.out, "Welcome back! Continue as %s?\n", partition.UserType())
		return nil
	}
	fmt.Fprintln(e.out, "Welcome to RoomieLink! Are you a student or a landlord?")
	return nil
}
