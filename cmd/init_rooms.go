package main

import (
	"context"
	"fmt"

	"github.com/hoteldesk/hoteldesk/config"
	"github.com/hoteldesk/hoteldesk/internal/services"
	"github.com/spf13/cobra"
)

func newInitRoomsCmd() *cobra.Command {
	var (
		count int
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "init-rooms",
		Short: "Create the initial set of available rooms",
		Long: "Create rooms numbered 1..count. Fails if rooms exist unless --reset is given,\n" +
			"which deletes every room and its guest history first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if !cmd.Flags().Changed("count") {
				count = cfg.RoomCount
			}

			roomRepo, closeDB, err := openRoomRepository(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			rooms, err := services.NewRoomService(roomRepo, nil).InitRooms(context.Background(), count, reset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %d rooms\n", len(rooms))
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 9, "number of rooms to create")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing rooms and history first")
	return cmd
}
