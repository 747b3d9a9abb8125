package database

const postgresVerseTable = `
CREATE TABLE IF NOT EXISTS t_kjv (
	id      BIGSERIAL PRIMARY KEY,
	book    TEXT    NOT NULL,
	chapter INTEGER NOT NULL,
	verse   INTEGER NOT NULL,
	text    TEXT    NOT NULL
)`

const sqliteVerseTable = `
CREATE TABLE IF NOT EXISTS t_kjv (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	book    TEXT    NOT NULL,
	chapter INTEGER NOT NULL,
	verse   INTEGER NOT NULL,
	text    TEXT    NOT NULL
)`
