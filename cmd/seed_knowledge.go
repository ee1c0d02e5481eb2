package cmd

import (
	"context"
	"time"

	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/knowledge"
	"courierbot/internal/core/ports"
)

type seedEntry struct {
	category string
	title    string
	body     string
	keywords []string
}

// Seed categories reuse the intent domain names so grounded answers and the
// category listing line up with how messages are classified.
func seedEntries() []seedEntry {
	return []seedEntry{
		{
			category: "policy_query",
			title:    "Package Damage Protocol",
			body: "If a package is damaged during transit: 1) Take clear photos of the damage immediately " +
				"2) Do NOT complete the delivery 3) Contact dispatch via the app or call the hotline " +
				"4) Return the package to the hub with proper documentation 5) Fill out an incident report within 2 hours",
			keywords: []string{"damage", "damaged", "broken", "package", "protocol", "incident"},
		},
		{
			category: "customer_communication",
			title:    "Customer Not Available - Standard Process",
			body: "When customer is not available for delivery: 1) Ring doorbell/knock and wait 2 minutes " +
				"2) Call customer phone number 3) If no response, leave delivery notice with your contact info " +
				"4) Mark delivery as \"attempted\" in the app 5) Schedule redelivery for next business day " +
				"6) After 3 failed attempts, return package to hub and contact customer service",
			keywords: []string{"customer", "not available", "absent", "redelivery", "attempt", "notice"},
		},
		{
			category: "earnings",
			title:    "Cash on Delivery (COD) Process",
			body: "For COD deliveries: 1) Confirm exact amount with customer before handing over package " +
				"2) Accept only exact cash amount (no change provided) 3) Issue receipt immediately " +
				"4) Take photo of cash received 5) Update payment status in app within 5 minutes " +
				"6) Deposit cash at designated collection points before end of shift",
			keywords: []string{"cod", "cash on delivery", "payment", "money", "receipt"},
		},
		{
			category: "technical_support",
			title:    "GPS Not Working - Troubleshooting",
			body: "If GPS navigation is not working: 1) Check if location services are enabled for the delivery app " +
				"2) Restart the app completely 3) Toggle airplane mode on/off to refresh network connection " +
				"4) Clear app cache (Android) or force-close app (iOS) 5) Use offline maps feature if available " +
				"6) Contact technical support at 1-800-TECH-HELP if issue persists",
			keywords: []string{"gps", "navigation", "maps", "technical", "location", "offline"},
		},
		{
			category: "technical_support",
			title:    "App Login Issues",
			body: "If you cannot login to the delivery app: 1) Check your internet connection " +
				"2) Verify username and password spelling 3) Try \"Forgot Password\" if needed " +
				"4) Clear app cache/data 5) Update app to latest version 6) Restart your phone " +
				"7) Contact IT support if problem continues",
			keywords: []string{"login", "password", "app", "access", "authentication", "forgot"},
		},
		{
			category: "emergency",
			title:    "Vehicle Breakdown Protocol",
			body: "In case of vehicle breakdown: 1) Move to a safe location immediately 2) Turn on hazard lights " +
				"3) Call emergency hotline: 1-800-EMERGENCY 4) Take photos of vehicle and location " +
				"5) Do NOT attempt repairs yourself 6) Arrange alternative transport for urgent deliveries " +
				"7) Fill out breakdown report 8) Wait for assistance or further instructions",
			keywords: []string{"breakdown", "vehicle", "emergency", "accident", "hazard", "repair"},
		},
		{
			category: "emergency",
			title:    "Accident or Incident Reporting",
			body: "If involved in an accident: 1) Ensure personal safety first 2) Call 911 if injuries or major damage " +
				"3) Do NOT admit fault 4) Take photos of all vehicles, damage, and scene " +
				"5) Exchange insurance information 6) Get witness contact details " +
				"7) Call company emergency line immediately 8) Do NOT continue deliveries until cleared by supervisor",
			keywords: []string{"accident", "incident", "crash", "injury", "police", "insurance"},
		},
		{
			category: "policy_query",
			title:    "Delivery Time Windows",
			body: "Standard delivery time windows: Morning (9AM-12PM), Afternoon (12PM-5PM), Evening (5PM-8PM). " +
				"Always arrive within the promised time window. If running late: 1) Call customer 15 minutes " +
				"before window expires 2) Provide realistic new ETA 3) Apologize for delay " +
				"4) Update status in app with reason for delay",
			keywords: []string{"time", "window", "schedule", "late", "delay", "eta", "promise"},
		},
		{
			category: "customer_communication",
			title:    "Special Delivery Instructions",
			body: "For deliveries with special instructions: 1) Read all instructions carefully before starting route " +
				"2) Call customer if instructions are unclear 3) Take photos when requested (e.g., \"leave at door\") " +
				"4) Get signature for high-value items 5) Do NOT enter customer premises unless explicitly safe " +
				"and appropriate 6) Document any deviations from instructions",
			keywords: []string{"special", "instructions", "signature", "photo", "door", "premises"},
		},
		{
			category: "earnings",
			title:    "Earnings and Payment Questions",
			body: "Earnings are calculated based on: Base delivery fee + Distance bonus + Peak time multiplier + " +
				"Customer tips. Payments are processed weekly on Fridays. Check your earnings in the app under " +
				"\"Performance\" tab. For payment issues, contact payroll at payroll@company.com or call 1-800-PAY-HELP",
			keywords: []string{"earnings", "payment", "salary", "money", "tip", "bonus", "payroll"},
		},
	}
}

// SeedKnowledgeBase inserts the starter knowledge entries when the knowledge
// base is empty. An already populated base is left untouched.
func SeedKnowledgeBase(ctx context.Context, repo ports.KnowledgeRepository) error {
	categories, err := repo.Categories(ctx)
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, seed := range seedEntries() {
		entry, err := knowledge.NewEntry(kernel.NewUUID(), seed.category, seed.title,
			seed.body, seed.keywords, now)
		if err != nil {
			return err
		}
		if err = repo.Add(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}
