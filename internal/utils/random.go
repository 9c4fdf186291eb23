package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"Alice", "Bruno", "Carla", "Diego", "Elena", "Felix", "Grace", "Hugo",
	"Irene", "Jonas", "Klara", "Lucas", "Marta", "Nadia", "Oscar", "Paula",
	"Quinn", "Rafael", "Sofia", "Tomas",
}

var lastNames = []string{
	"Almeida", "Becker", "Costa", "Duarte", "Esteves", "Ferreira", "Gomes",
	"Hoffmann", "Ibanez", "Jensen", "Keller", "Lima", "Martins", "Nunes",
	"Oliveira", "Pereira", "Ribeiro", "Santos", "Teixeira", "Vieira",
}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var roles = []domain.Role{
	domain.RoleTeamA,
	domain.RoleTeamB,
	domain.RoleTeamC,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	id := make([]rune, letterLength+digitLength)
	for i := range id {
		if i < letterLength {
			id[i] = letters[rand.Intn(len(letters))]
		} else {
			id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(id)
}

func emailFromName(name string, emailDomainName string) string {
	parts := strings.Split(strings.ToLower(name), " ")
	local := strings.Join(parts, ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + emailDomainName
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	name := GenerateRandomName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        emailFromName(name, emailDomainName),
		PasswordHash: string(passwordHash),
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

var routeCities = []string{
	"Aveiro", "Braga", "Coimbra", "Faro", "Guarda", "Leiria",
	"Porto", "Setubal", "Viseu", "Evora",
}

func GenerateRandomRoute() *domain.Route {
	from := routeCities[rand.Intn(len(routeCities))]
	to := routeCities[rand.Intn(len(routeCities))]
	for to == from {
		to = routeCities[rand.Intn(len(routeCities))]
	}

	return &domain.Route{
		Name:        from + " - " + to,
		Identifier:  "RT-" + GenerateRandomID(0, 4),
		Description: "Regular service between " + from + " and " + to,
	}
}

var resourceTypes = []domain.ResourceType{
	domain.ResourceTypeVehicle,
	domain.ResourceTypeWorker,
}

func GenerateRandomResource() *domain.Resource {
	resourceType := resourceTypes[rand.Intn(len(resourceTypes))]

	resource := &domain.Resource{
		Type:     resourceType,
		IsActive: rand.Intn(10) > 1,
	}

	switch resourceType {
	case domain.ResourceTypeVehicle:
		resource.Name = "Bus " + GenerateRandomID(0, 3)
		resource.Details = map[string]any{
			"plate":    fmt.Sprintf("%c%c-%02d-%02d", 'A'+rand.Intn(26), 'A'+rand.Intn(26), rand.Intn(100), rand.Intn(100)),
			"capacity": 20 + rand.Intn(40),
		}
	case domain.ResourceTypeWorker:
		resource.Name = GenerateRandomName()
		resource.Details = map[string]any{
			"licensedSince": time.Now().AddDate(-rand.Intn(20)-1, 0, 0).Format("2006-01-02"),
		}
	}

	return resource
}
