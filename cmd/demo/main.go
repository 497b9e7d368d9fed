// Demo data generator: registers a user through the public API and fills
// the garage with randomized vehicles and maintenance records. Useful for
// exercising a development deployment end to end.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type vehiclePayload struct {
	Kind         string   `json:"kind"`
	Plate        string   `json:"plate"`
	Model        string   `json:"model"`
	Color        string   `json:"color"`
	Doors        *int     `json:"doors,omitempty"`
	Axles        *int     `json:"axles,omitempty"`
	LoadCapacity *float64 `json:"load_capacity,omitempty"`
	TurboOn      *bool    `json:"turbo_on,omitempty"`
	CurrentLoad  *float64 `json:"current_load,omitempty"`
}

type maintenancePayload struct {
	ServiceType string  `json:"service_type"`
	Date        string  `json:"date"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description,omitempty"`
}

var (
	carModels    = []string{"Onix", "Gol", "Civic", "Corolla", "HB20"}
	sportsModels = []string{"Mustang GT", "Supra", "911 Carrera", "F8 Tributo"}
	truckModels  = []string{"Actros", "FH 540", "Scania R450", "Constellation"}
	colors       = []string{"black", "white", "silver", "red", "blue"}
	services     = []string{"Oil change", "Tire rotation", "Brake service", "Battery service", "Inspection"}
)

var authToken string

func post(url string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func randomPlate() string {
	letters := make([]byte, 3)
	for i := range letters {
		letters[i] = byte('A' + rand.Intn(26))
	}
	return fmt.Sprintf("%s%d%c%d%d", letters, rand.Intn(10), 'A'+rand.Intn(26), rand.Intn(10), rand.Intn(10))
}

func randomVehicle() vehiclePayload {
	color := colors[rand.Intn(len(colors))]
	switch rand.Intn(3) {
	case 0:
		doors := 2 + 2*rand.Intn(2)
		return vehiclePayload{Kind: "car", Plate: randomPlate(), Model: carModels[rand.Intn(len(carModels))], Color: color, Doors: &doors}
	case 1:
		doors := 2
		turbo := rand.Intn(2) == 0
		return vehiclePayload{Kind: "sports_car", Plate: randomPlate(), Model: sportsModels[rand.Intn(len(sportsModels))], Color: color, Doors: &doors, TurboOn: &turbo}
	default:
		axles := 2 + rand.Intn(3)
		capacity := float64(5000 + rand.Intn(20000))
		load := capacity * rand.Float64()
		return vehiclePayload{Kind: "truck", Plate: randomPlate(), Model: truckModels[rand.Intn(len(truckModels))], Color: color, Axles: &axles, LoadCapacity: &capacity, CurrentLoad: &load}
	}
}

func randomMaintenance() maintenancePayload {
	// Spread dates around today so both past-due and scheduled entries show
	// up in the UI.
	date := time.Now().UTC().AddDate(0, 0, rand.Intn(120)-90)
	return maintenancePayload{
		ServiceType: services[rand.Intn(len(services))],
		Date:        date.Format("2006-01-02"),
		Cost:        50 + rand.Float64()*800,
	}
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	numVehicles := 5
	if n, err := strconv.Atoi(os.Getenv("NUM_VEHICLES")); err == nil && n > 0 {
		numVehicles = n
	}

	email := fmt.Sprintf("demo-%d@garagem.dev", time.Now().Unix())
	var login loginResponse
	if err := post(apiURL+"/users/register", registerRequest{Name: "Demo User", Email: email, Password: "demo-password-1"}, &login); err != nil {
		log.WithError(err).Fatal("failed to register demo user")
	}
	authToken = login.Token
	log.WithField("email", email).Info("registered demo user")

	for i := 0; i < numVehicles; i++ {
		vehicle := randomVehicle()
		var created struct {
			ID string `json:"id"`
		}
		if err := post(apiURL+"/api/vehicles", vehicle, &created); err != nil {
			log.WithError(err).WithField("plate", vehicle.Plate).Error("failed to create vehicle")
			continue
		}
		log.WithFields(log.Fields{"plate": vehicle.Plate, "kind": vehicle.Kind}).Info("created vehicle")

		for j := 0; j < 1+rand.Intn(4); j++ {
			record := randomMaintenance()
			url := fmt.Sprintf("%s/api/vehicles/%s/maintenances", apiURL, created.ID)
			if err := post(url, record, nil); err != nil {
				log.WithError(err).Error("failed to create maintenance record")
			}
		}
	}
	log.Info("demo data generated")
}
