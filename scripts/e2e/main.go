package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Steps:
// 1. Subscribe to the event topic and print every notification
// 2. Publish each line of the frames file to the data topic
// 3. Wait for the service to work through them
// 4. Fetch /events and /sensors and print them

func main() {
	broker := flag.String("broker", "tcp://localhost:1883", "MQTT broker")
	dataTopic := flag.String("data-topic", "sensor/data", "topic frames are published to")
	eventTopic := flag.String("event-topic", "sensor/event", "topic events are published on")
	framesPath := flag.String("frames", "./frames.txt", "file with one raw frame per line")
	apiURL := flag.String("api", "http://localhost:8080", "service HTTP address")
	wait := flag.Duration("wait", 10*time.Second, "time to let the service process frames")
	flag.Parse()

	client := paho.NewClient(paho.NewClientOptions().
		AddBroker(*broker).
		SetClientID(fmt.Sprintf("slope-e2e-%d", time.Now().UnixNano())))
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(fmt.Errorf("failed to connect to broker: %w", token.Error()))
	}
	defer client.Disconnect(250)

	received := 0
	token := client.Subscribe(*eventTopic, 1, func(_ paho.Client, m paho.Message) {
		received++
		fmt.Printf("event notification: %s\n", string(m.Payload()))
	})
	if token.Wait() && token.Error() != nil {
		panic(fmt.Errorf("failed to subscribe to %s: %w", *eventTopic, token.Error()))
	}

	file, err := os.Open(*framesPath)
	if err != nil {
		panic(fmt.Errorf("failed to open frames file: %w", err))
	}
	defer file.Close()

	published := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		token := client.Publish(*dataTopic, 1, false, line)
		if token.Wait() && token.Error() != nil {
			fmt.Printf("failed to publish frame: %v\n", token.Error())
			continue
		}
		published++
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("error reading frames file: %v\n", err)
	}
	fmt.Printf("Published %d frames to '%s'\n", published, *dataTopic)

	time.Sleep(*wait)
	fmt.Printf("Received %d event notifications on '%s'\n", received, *eventTopic)

	for _, path := range []string{"/sensors", "/events"} {
		if err := printJSON(*apiURL + path); err != nil {
			fmt.Printf("Error fetching %s: %v\n", path, err)
		}
	}
}

func printJSON(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("unmarshalling response: %w (raw: %s)", err, string(body))
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("%s:\n%s\n", url, string(pretty))
	return nil
}
