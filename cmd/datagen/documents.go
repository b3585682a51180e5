package main

const visaRulesDoc = `# International Visa Rules and Requirements

## Visa-Free and Visa-on-Arrival Travel

Holders of passports from the USA, UK, Canada, Australia, Japan, South Korea,
Singapore, and most EU countries can enter the UAE visa-free for stays of up
to 30 days. An extension of another 30 days is available for a fee before the
initial stay expires.

Thailand grants visa-free entry for up to 30 days to passport holders from
64 countries when arriving by air. Travelers arriving overland receive 15
days. Visa-on-arrival is available for nationals of India and China for
stays of up to 15 days, with a fee of 2,000 THB payable in cash.

Turkey offers e-visas to travelers from over 100 countries. The e-visa is
valid for 180 days from the date of issue and allows stays of up to 90 days
for most nationalities. Applications are processed online within 24 hours.

## Schengen Area

Travelers from the USA, UK, Canada, Australia, and Japan may stay in the
Schengen Area for up to 90 days within any 180-day period without a visa.
Nationals of India, China, Egypt, and Vietnam require a Schengen visa,
which must be applied for at the consulate of the main destination country.

Required documents for a Schengen visa application:

- Passport valid for at least 3 months beyond the intended departure date
- Two recent passport photographs
- Travel medical insurance with minimum coverage of EUR 30,000
- Proof of accommodation and a return flight reservation
- Bank statements covering the last 3 months

Standard processing time is 15 calendar days, extendable to 45 days in
complex cases. Applications can be submitted up to 6 months before travel.

## United States

Citizens of Visa Waiver Program countries (including the UK, Japan,
Singapore, South Korea, and most EU members) must obtain an ESTA
authorization before boarding. ESTA is valid for 2 years and allows stays
of up to 90 days per visit.

All other nationalities require a B-1/B-2 visitor visa. Interview wait
times at embassies vary from 2 weeks to several months, so applicants
should plan ahead. The visa fee is USD 185 and is non-refundable.

## Japan

Japan grants visa-free entry of up to 90 days to nationals of 68 countries
including the USA, UK, Canada, Australia, and Singapore. Indian and Chinese
nationals must apply for a temporary visitor visa with an itinerary, proof
of funds, and an invitation letter if visiting acquaintances. Processing
takes around 5 working days.

## Transit Visa Requirements

- UK: travelers changing airports in London, or passing through on certain
  nationalities, need a Direct Airside Transit Visa (DATV) even when not
  clearing immigration.
- China: offers 24-hour, 72-hour, and 144-hour visa-free transit in major
  hubs for travelers holding onward tickets to a third country.
- USA: no airside transit exists. All passengers, including those
  connecting to another international flight, must clear immigration and
  therefore need either ESTA or a C-1 transit visa.
- Schengen: airside transit is visa-free for most nationalities, but
  nationals of 12 listed countries require an Airport Transit Visa.

## Special Conditions

Travelers with a criminal record may be refused entry to the USA, Canada,
Australia, and New Zealand regardless of visa status. Canada treats a DUI
conviction as grounds for inadmissibility.

Passports must generally be valid for 6 months beyond the date of entry.
The Schengen Area, the UK, and a handful of other destinations accept
3 months of remaining validity instead.

Proof of onward travel is routinely checked at boarding for Thailand, the
Philippines, Indonesia, and New Zealand. Airlines can deny boarding when a
traveler cannot show a return or onward ticket.
`

const refundPoliciesDoc = `# Airline Refund and Cancellation Policies

## Refundable vs Non-Refundable Tickets

Fully refundable tickets can be cancelled at any time before departure for
a complete refund to the original form of payment. They typically cost
40-80% more than non-refundable fares in the same cabin. Refunds are
processed within 7 business days for credit card purchases and within 20
business days for cash or bank transfer purchases.

Non-refundable tickets forfeit the base fare upon cancellation. Government
taxes and fees are refundable on request for most carriers. Many airlines
issue the residual value as a travel credit valid for 12 months from the
original booking date, minus a cancellation fee.

## The 24-Hour Rule

Bookings made directly with an airline for travel to, from, or within the
USA can be cancelled within 24 hours of purchase for a full refund, as long
as the booking was made at least 7 days before departure. Several carriers
extend this courtesy worldwide; low-cost carriers such as Ryanair and
Spirit Airlines generally do not.

## Cancellation Timeframes and Fees

Typical cancellation fees as a share of the ticket price:

- More than 60 days before departure: 0-5%
- 30 to 60 days before departure: 5-10%
- 7 to 30 days before departure: 10-15%
- Less than 7 days before departure: 15-20%
- No-show: full fare forfeited on most non-flexible fares

Full-service carriers in alliances (Star Alliance, OneWorld, SkyTeam)
commonly waive change fees on international fares and collect only the
fare difference. Ultra-low-cost carriers charge both a change fee and the
fare difference.

## Policies by Ticket Class

Economy: non-refundable by default. Changes allowed for a fee plus fare
difference. Basic economy fares on US carriers allow no changes at all.

Premium economy: changes usually free, cancellation fee around 10% of the
fare. Credit issued for the remainder.

Business: most fares are refundable with a fee of 5-10%. Flexible business
fares refund in full and allow unlimited date changes.

First: fully refundable on nearly all carriers with no cancellation fee
when cancelled more than 24 hours before departure.

## Special Circumstances

Medical emergencies: airlines generally refund or reissue without penalty
when the passenger provides a physician's certificate. Immediate family
members on the same booking are covered by the same waiver. Documentation
must usually be submitted within 14 days of the scheduled flight.

Bereavement: many full-service carriers offer fee waivers or discounted
last-minute fares on presentation of a death certificate for an immediate
family member.

Weather and schedule disruptions: when the airline cancels a flight or
changes the schedule by more than 3 hours, passengers are entitled to a
full refund regardless of fare type, under both US DOT rules and EU
Regulation 261/2004. EU261 additionally provides compensation of EUR
250-600 for qualifying delays, unless extraordinary circumstances apply.

Visa refusal: a minority of carriers refund non-refundable fares with
proof of visa denial, minus a processing fee. Most treat visa refusal as a
standard cancellation.

## Travel Insurance Recommendations

Trip cancellation insurance typically costs 5-7% of the trip value and
reimburses non-refundable costs for covered reasons such as illness, jury
duty, or job loss. "Cancel for any reason" upgrades refund 50-75% of the
trip cost and must be purchased within 14-21 days of the initial booking.

Credit card travel protection often duplicates basic cancellation cover.
Check card benefits before buying a standalone policy.
`
