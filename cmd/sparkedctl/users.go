package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/entity"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/infra/db"
	"github.com/sparked/backend/internal/integration/adapters"
	"github.com/sparked/backend/internal/integration/persistence"
)

func newUsersCmd(a *app) *cobra.Command {
	users := &cobra.Command{
		Use:   "users",
		Short: "Inspect and manage user accounts",
	}
	users.AddCommand(newUsersListCmd(a))
	users.AddCommand(newUsersCreateCmd(a))
	users.AddCommand(newUsersVerifyCmd(a))
	users.AddCommand(newUsersSetAdminCmd(a))
	users.AddCommand(newUsersSetActiveCmd(a))
	return users
}

func newUsersListCmd(a *app) *cobra.Command {
	var (
		search   string
		verified string
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := adapter.ListUsersFilter{
				Search: strings.TrimSpace(search),
				Limit:  limit,
				Offset: offset,
			}
			switch verified {
			case "":
			case "yes", "true":
				v := true
				filter.Verified = &v
			case "no", "false":
				v := false
				filter.Verified = &v
			default:
				return fmt.Errorf("--verified must be yes or no, got %q", verified)
			}

			return a.withDB(func(database *db.Database) error {
				users, total, err := persistence.NewUserRepository(database.DB()).List(cmd.Context(), filter)
				if err != nil {
					return fmt.Errorf("failed to list users: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(users) == 0 {
					fmt.Fprintln(out, "No users found.")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tFULL NAME\tEMAIL\tPHONE\tADMIN\tACTIVE\tVERIFIED\tCREATED")
				for _, u := range users {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%t\t%t\t%s\n",
						u.ID, u.FullName, u.Email, u.Phone, u.IsAdmin, u.IsActive, u.EmailVerified,
						u.CreatedAt.Format(time.DateTime))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(out, "%d of %d users\n", len(users), total)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name or email")
	cmd.Flags().StringVar(&verified, "verified", "", "filter by email verification (yes or no)")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of users")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of users to skip")
	return cmd
}

func newUsersCreateCmd(a *app) *cobra.Command {
	var (
		fullName string
		phone    string
		password string
		admin    bool
	)

	cmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create a verified user, optionally an administrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.ToLower(strings.TrimSpace(args[0]))
			passwordService := adapters.NewPasswordService(a.cfg.Security.BcryptCost)
			if err := passwordService.ValidatePasswordStrength(password); err != nil {
				return err
			}

			return a.withDB(func(database *db.Database) error {
				repo := persistence.NewUserRepository(database.DB())
				ctx := cmd.Context()

				if exists, err := repo.ExistsByEmail(ctx, email); err != nil {
					return err
				} else if exists {
					return domainerror.ErrEmailAlreadyExists
				}

				hash, err := passwordService.HashPassword(password)
				if err != nil {
					return err
				}

				user := entity.NewUser(strings.TrimSpace(fullName), email, strings.TrimSpace(phone), hash)
				user.IsAdmin = admin
				user.MarkEmailVerified(time.Now().UTC())
				if err := repo.Create(ctx, user); err != nil {
					return fmt.Errorf("failed to create user: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant administrator rights")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <email>",
		Short: "Mark a user's email address as verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateUser(cmd, args[0], func(u *entity.User) {
				u.MarkEmailVerified(time.Now().UTC())
			}, "verified")
		},
	}
}

func newUsersSetAdminCmd(a *app) *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "set-admin <email>",
		Short: "Grant or revoke administrator rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := "granted admin"
			if revoke {
				state = "revoked admin"
			}
			return a.updateUser(cmd, args[0], func(u *entity.User) {
				u.IsAdmin = !revoke
				u.UpdatedAt = time.Now().UTC()
			}, state)
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "revoke instead of grant")
	return cmd
}

func newUsersSetActiveCmd(a *app) *cobra.Command {
	var deactivate bool
	cmd := &cobra.Command{
		Use:   "set-active <email>",
		Short: "Activate or deactivate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := "activated"
			if deactivate {
				state = "deactivated"
			}
			return a.updateUser(cmd, args[0], func(u *entity.User) {
				u.IsActive = !deactivate
				u.UpdatedAt = time.Now().UTC()
			}, state)
		},
	}
	cmd.Flags().BoolVar(&deactivate, "deactivate", false, "deactivate instead of activate")
	return cmd
}

func (a *app) updateUser(cmd *cobra.Command, email string, apply func(*entity.User), state string) error {
	return a.withDB(func(database *db.Database) error {
		repo := persistence.NewUserRepository(database.DB())
		ctx := cmd.Context()

		user, err := repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			if errors.Is(err, domainerror.ErrUserNotFound) {
				return fmt.Errorf("no user with email %s", email)
			}
			return err
		}

		apply(user)
		if err := repo.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User %s %s\n", user.Email, state)
		return nil
	})
}
