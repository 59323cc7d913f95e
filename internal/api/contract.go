package api

type Event struct {
	ID         int64   `json:"id"`
	Event      int     `json:"event"`
	Severity   string  `json:"severity"`
	Score      float64 `json:"score"`
	SensorID   int64   `json:"sensorID,omitempty"`
	Overridden bool    `json:"overridden"`
	CreatedAt  string  `json:"createdAt"`
}

type ListEventsResponse struct {
	Events []Event `json:"events"`
}

type Sensor struct {
	ID                 int64   `json:"id"`
	Class              string  `json:"class"`
	Port               int     `json:"port"`
	MAC                string  `json:"mac"`
	Name               string  `json:"name"`
	Threshold          float64 `json:"threshold"`
	CalibrationTableID int     `json:"calibrationTableID"`
	HysteresisUntil    string  `json:"hysteresisUntil,omitempty"`
}

type ListSensorsResponse struct {
	Sensors []Sensor `json:"sensors"`
}

type TiltReading struct {
	ID          int64   `json:"id"`
	ReceivedAt  string  `json:"receivedAt"`
	NodeState   int     `json:"nodeState"`
	ObservedAt  int64   `json:"observedAt"`
	TiltX       float64 `json:"tiltX"`
	TiltY       float64 `json:"tiltY"`
	Temperature float64 `json:"temperature"`
	TableID     int     `json:"tableID"`
}

type ListReadingsResponse struct {
	MAC      string        `json:"mac"`
	Readings []TiltReading `json:"readings"`
}
