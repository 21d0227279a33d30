package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/lemove/lemove/sim"
)

const dateLayout = "2006-01-02"

var (
	oldStreet, oldPostal, oldCity string
	newStreet, newPostal, newCity string
	moveDate                      string
	alreadyMoved                  bool
	contactName, contactEmail     string
	contactPhone, contactBirthday string
	contactAccepted               bool
)

// addressFlags tracks which parts of one address were given on the command line.
type addressFlags struct {
	Street, PostalCode, City *string
}

func (f addressFlags) set() bool {
	return f.Street != nil || f.PostalCode != nil || f.City != nil
}

// merge overwrites the given parts of current.
func (f addressFlags) merge(current sim.Address) sim.Address {
	if f.Street != nil {
		current.Street = *f.Street
	}
	if f.PostalCode != nil {
		current.PostalCode = *f.PostalCode
	}
	if f.City != nil {
		current.City = *f.City
	}
	return current
}

// moveOptions are the move fields a user chose to change.
type moveOptions struct {
	Old, New     addressFlags
	MoveDate     *string
	AlreadyMoved *bool
	Phone        *string
	Birthday     *string
}

// runMoveSet applies opts to the stored move.
func runMoveSet(w io.Writer, a *app, opts moveOptions) error {
	current := a.session.Snapshot().Move
	var patch sim.MovePatch
	if opts.Old.set() {
		addr := opts.Old.merge(current.OldAddress)
		patch.OldAddress = &addr
	}
	if opts.New.set() {
		addr := opts.New.merge(current.NewAddress)
		patch.NewAddress = &addr
	}
	if opts.MoveDate != nil && *opts.MoveDate != "" {
		if _, err := time.Parse(dateLayout, *opts.MoveDate); err != nil {
			return fmt.Errorf("move date must be YYYY-MM-DD: %w", err)
		}
	}
	if opts.Birthday != nil && *opts.Birthday != "" {
		if _, err := time.Parse(dateLayout, *opts.Birthday); err != nil {
			return fmt.Errorf("birthday must be YYYY-MM-DD: %w", err)
		}
	}
	patch.MoveDate = opts.MoveDate
	patch.AlreadyMoved = opts.AlreadyMoved
	patch.Phone = opts.Phone
	patch.Birthday = opts.Birthday

	a.session.SetMove(patch)
	printMove(w, a.session.Snapshot().Move)
	return nil
}

// runMoveConfirm validates and stores the contact details sent to providers.
func runMoveConfirm(w io.Writer, a *app, name, email string, accepted bool) error {
	if err := sim.ValidateContact(name, email, accepted); err != nil {
		return err
	}
	a.session.SetMove(sim.MovePatch{FullName: &name, Email: &email})
	fmt.Fprintf(w, "Contact details confirmed for %s <%s>\n", name, email)
	return nil
}

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Show or edit the move details",
}

var moveShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the move details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			printMove(cmd.OutOrStdout(), a.session.Snapshot().Move)
			return nil
		})
	},
}

var moveSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Edit addresses, date and personal details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		changed := func(name string, v *string) *string {
			if flags.Changed(name) {
				return v
			}
			return nil
		}
		opts := moveOptions{
			Old:      addressFlags{changed("old-street", &oldStreet), changed("old-postal-code", &oldPostal), changed("old-city", &oldCity)},
			New:      addressFlags{changed("new-street", &newStreet), changed("new-postal-code", &newPostal), changed("new-city", &newCity)},
			MoveDate: changed("date", &moveDate),
			Phone:    changed("phone", &contactPhone),
			Birthday: changed("birthday", &contactBirthday),
		}
		if flags.Changed("already-moved") {
			opts.AlreadyMoved = &alreadyMoved
		}
		return withApp(func(a *app) error { return runMoveSet(cmd.OutOrStdout(), a, opts) })
	},
}

var moveConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm the contact details forwarded to providers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return runMoveConfirm(cmd.OutOrStdout(), a, contactName, contactEmail, contactAccepted)
		})
	},
}

func init() {
	f := moveSetCmd.Flags()
	f.StringVar(&oldStreet, "old-street", "", "Street and number of the old address")
	f.StringVar(&oldPostal, "old-postal-code", "", "Postal code of the old address")
	f.StringVar(&oldCity, "old-city", "", "City of the old address")
	f.StringVar(&newStreet, "new-street", "", "Street and number of the new address")
	f.StringVar(&newPostal, "new-postal-code", "", "Postal code of the new address")
	f.StringVar(&newCity, "new-city", "", "City of the new address")
	f.StringVar(&moveDate, "date", "", "Move date (YYYY-MM-DD)")
	f.BoolVar(&alreadyMoved, "already-moved", false, "The move has already happened")
	f.StringVar(&contactPhone, "phone", "", "Phone number")
	f.StringVar(&contactBirthday, "birthday", "", "Birthday (YYYY-MM-DD)")

	c := moveConfirmCmd.Flags()
	c.StringVar(&contactName, "name", "", "Full name")
	c.StringVar(&contactEmail, "email", "", "Email address")
	c.BoolVar(&contactAccepted, "accept", false, "Consent to forward the data to the selected providers")

	moveCmd.AddCommand(moveShowCmd, moveSetCmd, moveConfirmCmd)
}
