package constants

// Raw SQL used through sqlx. Placeholders are written as "?" and rebound per driver.
const (
	CountBookingTotals = `
	SELECT
		(SELECT COUNT(*) FROM airports) AS airports,
		(SELECT COUNT(*) FROM routes) AS routes,
		(SELECT COUNT(*) FROM flights) AS flights,
		(SELECT COUNT(*) FROM orders) AS orders,
		(SELECT COUNT(*) FROM tickets) AS tickets
	`

	UpcomingFlightOccupancy = `
	SELECT
		f.id AS flight_id,
		a.rows * a.seats_in_row AS capacity,
		COUNT(t.id) AS taken
	FROM flights f
	JOIN airplanes a ON a.id = f.airplane_id
	LEFT JOIN tickets t ON t.flight_id = f.id
	WHERE f.departure_time >= ?
	GROUP BY f.id, a.rows, a.seats_in_row
	ORDER BY f.departure_time
	LIMIT ?
	`
)
