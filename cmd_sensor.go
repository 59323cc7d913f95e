package main

import (
	"fmt"

	"slope-monitor/internal/db"
	"slope-monitor/internal/frame"
	"slope-monitor/internal/model"

	"github.com/spf13/cobra"
)

var sensorCmd = &cobra.Command{
	Use:   "sensor",
	Short: "Manage sensors",
	Long:  `Provision soil and weather sensors and list every known sensor.`,
}

var sensorAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Provision a sensor",
	Long: `Register a sensor so its frames are accepted. Soil and weather sensors
must be provisioned; tilt sensors register themselves on first contact.`,
	RunE: runSensorAdd,
}

var sensorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sensors",
	RunE:  runSensorList,
}

var (
	sensorPort      int
	sensorMAC       string
	sensorName      string
	sensorThreshold float64
)

func init() {
	rootCmd.AddCommand(sensorCmd)
	sensorCmd.AddCommand(sensorAddCmd)
	sensorCmd.AddCommand(sensorListCmd)

	sensorAddCmd.Flags().IntVar(&sensorPort, "port", int(model.PortSoil), "sensor class port (52660 tilt, 52652 soil, 0 weather)")
	sensorAddCmd.Flags().StringVar(&sensorMAC, "mac", "", "sensor MAC address")
	sensorAddCmd.Flags().StringVar(&sensorName, "name", "", "display name (defaults to <class>-<mac>)")
	sensorAddCmd.Flags().Float64Var(&sensorThreshold, "threshold", 0, "absolute tilt threshold (tilt sensors; defaults to detection.default_tilt_threshold)")
	sensorAddCmd.MarkFlagRequired("mac")
}

func runSensorAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	port := model.Port(sensorPort)
	switch port {
	case model.PortTilt, model.PortSoil, model.PortWeather:
	default:
		return fmt.Errorf("%w: port %d", frame.ErrUnknownSensorClass, sensorPort)
	}
	mac := frame.NormalizeMAC(sensorMAC)
	name := sensorName
	if name == "" {
		name = port.String() + "-" + mac
	}
	threshold := sensorThreshold
	if port == model.PortTilt && threshold == 0 {
		threshold = cfg.Detection.DefaultTiltThreshold
	}

	store, err := db.Init(ctx, db.Config{ConnString: cfg.DB.URL, MigrationsPath: cfg.DB.MigrationsPath, MaxConns: cfg.DB.MaxConns})
	if err != nil {
		return err
	}
	defer store.Close()

	sensor, err := store.RegisterSensor(ctx, model.Sensor{
		Port:      port,
		MAC:       mac,
		Name:      name,
		Threshold: threshold,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Sensor %d registered: %s %s (%s)\n", sensor.ID, sensor.Port, sensor.MAC, sensor.Name)
	return nil
}

func runSensorList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := db.Init(ctx, db.Config{ConnString: cfg.DB.URL, MigrationsPath: cfg.DB.MigrationsPath, MaxConns: cfg.DB.MaxConns})
	if err != nil {
		return err
	}
	defer store.Close()

	sensors, err := store.ListSensors(ctx)
	if err != nil {
		return err
	}
	if len(sensors) == 0 {
		fmt.Println("No sensors registered.")
		return nil
	}
	fmt.Printf("%-4s %-8s %-26s %-32s %9s %5s\n", "ID", "CLASS", "MAC", "NAME", "THRESHOLD", "TABLE")
	for _, s := range sensors {
		fmt.Printf("%-4d %-8s %-26s %-32s %9.2f %5d\n", s.ID, s.Port, s.MAC, s.Name, s.Threshold, s.CalibrationTableID)
	}
	return nil
}
